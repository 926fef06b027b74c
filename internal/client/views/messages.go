package views

import (
	"errors"

	"github.com/dmitrijs2005/teacherlms/internal/client/client"
	"github.com/dmitrijs2005/teacherlms/internal/client/services"
	"github.com/dmitrijs2005/teacherlms/internal/common"
)

const (
	MsgEmptyCategoryName   = "Category name cannot be empty"
	MsgAddCategoryFailed   = "Failed to add category"
	MsgNetworkError        = "Network error. Please try again."
	MsgDownloadUnavailable = "Failed to download file. The file may no longer be available."
	MsgSessionExpired      = "Your session has expired. Please sign in again."
)

// CreateCategoryMessage is the text shown when creating a category fails.
func CreateCategoryMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrEmptyCategoryName):
		return MsgEmptyCategoryName
	case errors.Is(err, client.ErrUnavailable):
		return MsgNetworkError
	}
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	return MsgAddCategoryFailed
}

// DownloadMessage is the text shown when a single download fails.
func DownloadMessage(err error) string {
	if errors.Is(err, services.ErrDownloadUnavailable) {
		return MsgDownloadUnavailable
	}
	return err.Error()
}
