package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeUploader struct {
	inputs []*s3manager.UploadInput
	bodies [][]byte
	err    error
}

func (u *fakeUploader) UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error) {
	if u.err != nil {
		return nil, u.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	u.inputs = append(u.inputs, input)
	u.bodies = append(u.bodies, body)
	return &s3manager.UploadOutput{Location: "s3://" + aws.StringValue(input.Bucket) + "/" + aws.StringValue(input.Key)}, nil
}

func TestExportEmployees(t *testing.T) {
	ts := newTestServer(t)
	uploader := &fakeUploader{}
	ts.app.exporter = &Exporter{uploader: uploader, bucket: "hr-exports", prefix: "exports/"}
	ts.app.now = func() time.Time { return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC) }

	hired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.insertEmployee("Ana", ts.Sales, hired, time.Now().UTC())
	ts.insertEmployee("Ben", ts.Engineering, hired, time.Now().UTC())
	ts.insertEmployee("Hidden", ts.Foreign, hired, time.Now().UTC())

	w := ts.do(http.MethodGet, "/api/employees/export?sort=first_name", ts.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, exportContentType, w.Header().Get("Content-Type"))
	require.Equal(t, "exports/employees-20240601-093000.xlsx", w.Header().Get(exportKeyHeader))
	require.Contains(t, w.Header().Get("Content-Disposition"), "employees-20240601-093000.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "First Name", rows[0][1])
	require.Equal(t, "Ana", rows[1][1])
	require.Equal(t, "Philippines", rows[1][6])
	require.Equal(t, "Sales", rows[1][9])
	require.Equal(t, "2024-01-01", rows[1][11])
	require.Equal(t, "Ben", rows[2][1])

	require.Len(t, uploader.inputs, 1)
	require.Equal(t, "hr-exports", aws.StringValue(uploader.inputs[0].Bucket))
	require.Equal(t, w.Body.Bytes(), uploader.bodies[0])
}

func TestExportSucceedsWhenArchiveFails(t *testing.T) {
	ts := newTestServer(t)
	ts.app.exporter = &Exporter{uploader: &fakeUploader{err: errors.New("access denied")}, bucket: "hr-exports"}

	w := ts.do(http.MethodGet, "/api/employees/export", ts.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Header().Get(exportKeyHeader))
}

func TestExportWithoutBucket(t *testing.T) {
	ex := &Exporter{}
	key, err := ex.Archive(context.Background(), "employees.xlsx", bytes.NewReader(nil))
	require.NoError(t, err)
	require.Empty(t, key)
}
