package command

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/celer-dev/celerc/cache"
	"github.com/celer-dev/celerc/expo"
	"github.com/celer-dev/celerc/internal/util"
	celerpath "github.com/celer-dev/celerc/path"
	"github.com/celer-dev/celerc/resource"
	"github.com/celer-dev/celerc/runtime"
	"github.com/celer-dev/celerc/setting"
)

const (
	exportFlagEntry       = "entry"
	exportFlagTarget      = "exec"
	exportFlagOutDir      = "out"
	exportFlagPayloadFile = "payload-file"
	exportFlagPayload     = "payload"
)

var exportCmd = &cobra.Command{
	Use:   "export <plugin-id> <export-id> [project-dir]",
	Args:  cobra.RangeArgs(2, 3),
	Short: "Run a registered plugin's exporter against a compiled project",
	Long: `The export command compiles the project the same way compile does, then
dispatches to the named plugin's exporter (e.g. "export-livesplit splits")
and writes the resulting file into the output directory.`,
	Example: `
  celerc export export-livesplit splits
  celerc export export-mist splits ./my-route --out ./dist`,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		pluginID, exportID := args[0], args[1]
		dir := "."
		if len(args) == 3 {
			dir = args[2]
		}
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve project directory: %w", err)
		}

		entryPath, _ := cmd.Flags().GetString(exportFlagEntry)
		useExec, _ := cmd.Flags().GetBool(exportFlagTarget)
		outDir, _ := cmd.Flags().GetString(exportFlagOutDir)
		payloadFile, _ := cmd.Flags().GetString(exportFlagPayloadFile)
		payloadOverride, _ := cmd.Flags().GetString(exportFlagPayload)

		payload, err := buildExportPayload(payloadFile, payloadOverride)
		if err != nil {
			return fmt.Errorf("export payload: %w", err)
		}

		manifestPath, _ := celerpath.New().Join("project.yaml")
		loader := resource.NewDispatchLoader(absDir)
		projectRes := resource.New(celerpath.Local(manifestPath), loader)
		prepCache := cache.NewPrepCache(time.Minute)
		budget := runtime.NewBudget(256, 1)

		result, host, err := runPipeline(cmd.Context(), loader, projectRes, entryPath, setting.Default(), prepCache, budget, nil)
		if err != nil {
			return err
		}

		var doc *expo.ExpoDoc
		if useExec {
			doc, err = host.ExportExecDoc(pluginID, exportID, payload, result.Exec)
		} else {
			doc, err = host.ExportCompDoc(pluginID, exportID, payload, result.Comp)
		}
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if doc == nil {
			return fmt.Errorf("export: plugin %q produced no file for %q", pluginID, exportID)
		}

		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		data, err := decodeBlob(doc.Blob)
		if err != nil {
			return fmt.Errorf("decode export blob: %w", err)
		}
		outPath := filepath.Join(outDir, doc.FileName)
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), outPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().String(exportFlagEntry, "", "entry-point resource reference overlaid on project.yaml")
	exportCmd.Flags().Bool(exportFlagTarget, false, "export from the executed document instead of the compiled one")
	exportCmd.Flags().String(exportFlagOutDir, ".", "directory to write the exported file into")
	exportCmd.Flags().String(exportFlagPayloadFile, "", "JSON file of base exporter settings")
	exportCmd.Flags().String(exportFlagPayload, "", "JSON object merged over --payload-file (RFC 7386), flag values win")
	rootCmd.AddCommand(exportCmd)
}

// buildExportPayload loads the exporter settings payload an exporter plugin
// receives (e.g. livesplit's requested split names). --payload-file supplies
// the base document; --payload is merged over it as an RFC 7386 JSON Merge
// Patch via util.PatchMap, the same patch semantics the teacher's
// `internal/project/patch.go` applies to workload overrides.
func buildExportPayload(payloadFile, payloadOverride string) (map[string]any, error) {
	base := map[string]any{}
	if payloadFile != "" {
		raw, err := os.ReadFile(payloadFile)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", payloadFile, err)
		}
		if err := json.Unmarshal(raw, &base); err != nil {
			return nil, fmt.Errorf("parse %s: %w", payloadFile, err)
		}
	}
	if payloadOverride == "" {
		return base, nil
	}
	patch := map[string]any{}
	if err := json.Unmarshal([]byte(payloadOverride), &patch); err != nil {
		return nil, fmt.Errorf("parse --%s: %w", exportFlagPayload, err)
	}
	return util.PatchMap(base, patch), nil
}

// decodeBlob turns an ExpoBlob into the raw bytes to write to disk (spec
// §4.13/§6 "exported document shapes"), grounded on `expo/blob.rs`'s three
// encodings.
func decodeBlob(b expo.ExpoBlob) ([]byte, error) {
	switch b.Kind {
	case expo.BlobText:
		return []byte(b.Data), nil
	case expo.BlobBase64:
		return base64.StdEncoding.DecodeString(b.Data)
	case expo.BlobBase64Gzip:
		raw, err := base64.StdEncoding.DecodeString(b.Data)
		if err != nil {
			return nil, err
		}
		r, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	default:
		return nil, fmt.Errorf("unknown blob kind %d", b.Kind)
	}
}
