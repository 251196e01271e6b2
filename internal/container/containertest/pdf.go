// Package containertest builds small PDF files for tests.
package containertest

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	// FileID is the first /ID entry of built files, in hex.
	FileID = "0123456789abcdef0123456789abcdef"
	// Profile is the content of the output intent profile stream.
	Profile = "not really an ICC profile"
)

// Spec describes a one-page PDF.
type Spec struct {
	// OutputIntents adds one output intent with a profile stream.
	OutputIntents bool
	// Attachment names an embedded file holding Content; none when empty.
	Attachment string
	Content    string
	// Kids puts the attachment into a child node of the name tree.
	Kids bool
	// NoEF leaves the attachment file spec without an /EF dictionary.
	NoEF bool
	// NoID omits the trailer /ID.
	NoID bool
	// BrokenIntents adds output intents that are not dictionaries or whose
	// profile is not a stream.
	BrokenIntents bool
}

func stream(dict, data string) string {
	return fmt.Sprintf("<< %s/Length %d >>\nstream\n%s\nendstream", dict, len(data), data)
}

// PDF assembles the file with a classic cross-reference table.
func PDF(spec Spec) []byte {
	name := spec.Attachment
	if name == "" {
		name = "unused.xml"
	}

	var intents []string
	if spec.OutputIntents {
		intents = append(intents, "4 0 R")
	}

	if spec.BrokenIntents {
		intents = append(intents, "42", "9 0 R", "10 0 R")
	}

	extra := ""
	if len(intents) > 0 {
		extra += " /OutputIntents [" + strings.Join(intents, " ") + "]"
	}

	ef := " /EF << /F 7 0 R >>"
	if spec.NoEF {
		ef = ""
	}

	if spec.Attachment != "" {
		if spec.Kids {
			extra += " /Names << /EmbeddedFiles << /Kids [8 0 R] >> >>"
		} else {
			extra += fmt.Sprintf(" /Names << /EmbeddedFiles << /Names [(%s) 6 0 R] >> >>", name)
		}
	}

	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R" + extra + " >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>",
		"<< /Type /OutputIntent /S /GTS_PDFA1 /OutputConditionIdentifier (sRGB IEC61966-2.1) /DestOutputProfile 5 0 R >>",
		stream("/N 3 ", Profile),
		fmt.Sprintf("<< /Type /Filespec /F (%s) /UF (%s)%s >>", name, name, ef),
		stream("/Type /EmbeddedFile ", spec.Content),
		fmt.Sprintf("<< /Names [(%s) 6 0 R] /Limits [(%s) (%s)] >>", name, name, name),
		"<< /Type /OutputIntent /S /GTS_PDFA1 /OutputConditionIdentifier (broken) /DestOutputProfile 2 0 R >>",
		"[/not /a /dict]",
	}

	var buf bytes.Buffer

	buf.WriteString("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()

	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")

	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	id := ""
	if !spec.NoID {
		id = fmt.Sprintf(" /ID [<%s> <%s>]", FileID, FileID)
	}

	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R%s >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, id, xref)

	return buf.Bytes()
}
