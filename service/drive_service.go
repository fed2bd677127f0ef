package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const googleSheetMimeType = "application/vnd.google-apps.spreadsheet"

// assetMimeTypes are the file types that can hold an asset export
var assetMimeTypes = map[string]bool{
	"text/csv":          true,
	"text/plain":        true,
	googleSheetMimeType: true,
}

// DriveFile describes a file in a Drive folder
type DriveFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime"`
}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	return NewDriveServiceWithOptions(ctx, option.WithCredentialsFile(credentialsPath))
}

// NewDriveServiceWithOptions creates a DriveService from explicit client options
func NewDriveServiceWithOptions(ctx context.Context, opts ...option.ClientOption) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// ListAssetFiles lists the CSV files and spreadsheets in a Google Drive folder
func (ds *DriveService) ListAssetFiles(ctx context.Context, folderID string) ([]DriveFile, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType, modifiedTime)").
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	var files []DriveFile
	for _, file := range allFiles {
		if !assetMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}
		files = append(files, DriveFile{
			ID:           file.Id,
			Name:         file.Name,
			MimeType:     file.MimeType,
			ModifiedTime: file.ModifiedTime,
		})
	}

	return files, nil
}

// DownloadFile returns the content of a Drive file.
// Google spreadsheets are exported as CSV.
func (ds *DriveService) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	meta, err := ds.client.Files.Get(fileID).Fields("id, name, mimeType").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}

	var body io.ReadCloser
	if meta.MimeType == googleSheetMimeType {
		resp, err := ds.client.Files.Export(fileID, "text/csv").Context(ctx).Download()
		if err != nil {
			return nil, fmt.Errorf("failed to export file %s: %w", fileID, err)
		}
		body = resp.Body
	} else {
		resp, err := ds.client.Files.Get(fileID).Context(ctx).Download()
		if err != nil {
			return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
		}
		body = resp.Body
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	log.Printf("✓ Downloaded %s (%s, %d bytes)", meta.Name, meta.MimeType, len(data))
	return data, nil
}
