package common

import "path"

// SplitResource splits a slash-separated resource name into its directory
// and base name. The directory of a bare name is ".".
func SplitResource(name string) (string, string) {
	if name == "" {
		return ".", ""
	}

	return path.Dir(name), path.Base(name)
}
