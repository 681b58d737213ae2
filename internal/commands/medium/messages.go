package mediumcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importExportMessageType = "medium.import.export"

// ImportExportCommand imports every post of a Medium export under one parent
// resource.
type ImportExportCommand struct {
	// ExportPath is the unpacked export directory containing posts/.
	ExportPath string `json:"export_path"`
	TemplateID int64  `json:"template_id"`
	ParentID   int64  `json:"parent_id"`
	// Overwrite refreshes records that already exist instead of skipping them.
	Overwrite bool `json:"overwrite,omitempty"`
	DryRun    bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportExportCommand) Type() string { return importExportMessageType }

// Validate checks the export path and target identifiers.
func (cmd ImportExportCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ExportPath, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("medium.import.export.export_path_required", "export path is required")
			}
			return nil
		})),
		validation.Field(&cmd.TemplateID, validation.Min(int64(0))),
		validation.Field(&cmd.ParentID, validation.Min(int64(0))),
	)
}
