// Package pages indexes the front matter of markdown sources so rendered
// output files can be matched with their declared language and canonical
// language (the lang and canonical_lang keys).
package pages
