// Package expo implements the export document model (spec §4.13/§6):
// the shape plugin-produced exports take, independent of which plugin or
// phase produced them.
package expo

// BlobKind discriminates how ExpoBlob.Data is encoded (grounded on
// `expo/blob.rs`'s ExpoBlob enum).
type BlobKind int

const (
	BlobText BlobKind = iota
	BlobBase64
	BlobBase64Gzip
)

// ExpoBlob is one piece of exported content.
type ExpoBlob struct {
	Kind BlobKind
	Data string
}

// BlobFromText wraps UTF-8 text verbatim.
func BlobFromText(s string) ExpoBlob { return ExpoBlob{Kind: BlobText, Data: s} }

// ExportTarget says which phase an exporter needs to run against
// (grounded on `expo/mod.rs`'s ExportTarget).
type ExportTarget int

const (
	TargetCompDoc ExportTarget = iota
	TargetExecDoc
	TargetBoth
)

// ExportIcon picks the icon shown in export pickers.
type ExportIcon int

const (
	IconDefault ExportIcon = iota
	IconData
)

// ExportMetadata describes one exportable format a plugin offers (spec
// §6's export registry, grounded on `native/export_mist.rs`'s and
// `builtin/livesplit.rs`'s ExportMetadata literals).
type ExportMetadata struct {
	PluginID      string
	Target        ExportTarget
	Name          string
	Description   string
	Icon          ExportIcon
	Extension     string
	ExampleConfig string
	LearnMore     string
}

// ExpoDoc is one produced export file.
type ExpoDoc struct {
	FileName string
	Blob     ExpoBlob
}
