// Package assets provides the static parts of the generated documents.
//
// Two kinds of asset are embedded at compile time:
//
//	parts/{name}.xml        # OOXML parts laid over the base .docx package
//	templates/{name}.html   # html/template sources for the PDF page
//
// Asset names never carry an extension or path component; ValidateAssetName
// rejects anything that could escape the asset directory.
package assets
