// Package match ranks known names against a name that failed lookup, for the
// "did you mean" suggestions of the catalog.
//
// Names are compared word by word and as a whole: "number_invoice" matches
// invoice_number through its words, "seller_nme" matches seller_name through
// its edit distance.
package match
