package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/gin-gonic/gin"
	"github.com/pavitra93/go-hr-admin-panel/shared/config"
	"github.com/pavitra93/go-hr-admin-panel/shared/models"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet       = "Employees"
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportKeyHeader   = "X-Export-Key"
)

var exportHeader = []interface{}{
	"ID", "First Name", "Middle Name", "Last Name", "Address", "Zip Code",
	"Country", "State", "City", "Department",
	"Date of Birth", "Date Hired", "Created At", "Updated At",
}

// Uploader stores finished workbooks. s3manager.Uploader satisfies it.
type Uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// Exporter renders employee lists as xlsx and optionally archives them in S3
type Exporter struct {
	uploader Uploader
	bucket   string
	prefix   string
}

// NewExporter archives to S3 only when a bucket is configured
func NewExporter(cfg config.ExportConfig) (*Exporter, error) {
	if cfg.S3Bucket == "" {
		return &Exporter{}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWSRegion),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Exporter{
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.S3Bucket,
		prefix:   cfg.S3Prefix,
	}, nil
}

func exportRow(e models.Employee) []interface{} {
	var country, state, city, department string
	if e.Country != nil {
		country = e.Country.Name
	}
	if e.State != nil {
		state = e.State.Name
	}
	if e.City != nil {
		city = e.City.Name
	}
	if e.Department != nil {
		department = e.Department.Name
	}

	return []interface{}{
		e.ID, e.FirstName, e.MiddleName, e.LastName, e.Address, e.ZipCode,
		country, state, city, department,
		e.DateOfBirth.Format(models.DateLayout),
		e.DateHired.Format(models.DateLayout),
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Workbook writes employees into a single-sheet workbook
func (ex *Exporter) Workbook(employees []models.Employee) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range employees {
		row := exportRow(e)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf, nil
}

// Archive uploads the workbook and returns its object key. Without a bucket it does nothing.
func (ex *Exporter) Archive(ctx context.Context, name string, body io.Reader) (string, error) {
	if ex.uploader == nil {
		return "", nil
	}

	key := path.Join(ex.prefix, name)
	_, err := ex.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(ex.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(exportContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}
	return key, nil
}

// handleExportEmployees streams the filtered employee list as xlsx
func handleExportEmployees(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		info, ok := caller(c)
		if !ok {
			return
		}
		f, ok := bindListFilter(c, app)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		employees, err := app.lister.All(ctx, tenantScope(info), f)
		if err != nil {
			respondError(c, err, "Failed to load employees")
			return
		}

		buf, err := app.exporter.Workbook(employees)
		if err != nil {
			respondError(c, err, "Failed to export employees")
			return
		}

		name := fmt.Sprintf("employees-%s.xlsx", app.now().UTC().Format("20060102-150405"))
		key, err := app.exporter.Archive(ctx, name, bytes.NewReader(buf.Bytes()))
		if err != nil {
			// the download still succeeds without the archived copy
			app.logger.WithError(err).Warn("Failed to archive employee export")
		}
		if key != "" {
			c.Header(exportKeyHeader, key)
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
		c.Data(http.StatusOK, exportContentType, buf.Bytes())
	}
}
