package services

import (
	"fmt"
	"strings"

	"github.com/lp-esports/sports-day-system/models"
	"github.com/lp-esports/sports-day-system/storage"
)

func populateResultPhotoURL(result *models.Result, uploader storage.FileUploader) {
	if result != nil && result.PhotoKey != nil && *result.PhotoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*result.PhotoKey)
		if url != "" {
			result.PhotoURL = &url
		}
	}
}

func populateEntryPhotoURL(entry *models.LeaderboardEntry, uploader storage.FileUploader) {
	if entry != nil && entry.PhotoKey != nil && *entry.PhotoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*entry.PhotoKey)
		if url != "" {
			entry.PhotoURL = &url
		}
	}
}

func extensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type: %q", contentType)
	}
}

// formatTime renders a result time the way the display surfaces show it.
func formatTime(timeMin, timeSec int) string {
	return fmt.Sprintf("%d:%02d", timeMin, timeSec)
}
