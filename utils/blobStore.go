package utils

import (
	"encoding/json"
	"fmt"
	"mime/multipart"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// UploadToBlobStore sends an uploaded file to the object-store service and
// returns the durable reference string it assigns.
func UploadToBlobStore(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.BlobStoreKey).
		SetFileReader("file", file.Filename, src).
		Post(config.AppConfig.BlobStoreURL)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return "", fmt.Errorf("blob store returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var storeResp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body(), &storeResp); err != nil {
		return "", fmt.Errorf("invalid blob store response: %w", err)
	}
	if storeResp.URL == "" {
		return "", fmt.Errorf("blob store response missing url")
	}

	return storeResp.URL, nil
}
