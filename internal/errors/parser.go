package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/milicode/gym-panel/internal/inflight"
	"github.com/milicode/gym-panel/internal/storage"
	"github.com/milicode/gym-panel/internal/wizard"
	"github.com/milicode/gym-panel/pkg/gymapi"
)

// Contexts select the wording of remote failures. Writes echo the API's
// message, reads only the status.
const (
	ContextCreate     = "create"
	ContextFetch      = "fetch"
	ContextFacilities = "facilities"
	ContextMedia      = "media"
)

// ErrMissingBranchID is returned for branch routes without an identifier.
var ErrMissingBranchID = errors.New("branch id is required")

// ErrorInfo is the user-facing rendition of an error.
type ErrorInfo struct {
	Code    string // see codes.go
	Message string // Persian, shown as is
	Status  int    // HTTP status for the response carrying it
}

// ParseError maps an error from the services or the API client to a user
// message. Remote failures fall in three categories: the server answered,
// nothing answered, or the request never left.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "خطای داخلی سرور",
			Status:  http.StatusInternalServerError,
		}
	}

	var apiErr *gymapi.APIError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, ErrMissingBranchID):
		return ErrorInfo{Code: ValidationInvalidID, Message: "شناسه باشگاه نامعتبر است", Status: http.StatusBadRequest}

	case errors.Is(err, inflight.ErrInFlight):
		return ErrorInfo{Code: InFlightDuplicate, Message: "درخواست قبلی هنوز در حال انجام است", Status: http.StatusConflict}

	case errors.Is(err, wizard.ErrInvalidForm):
		return ErrorInfo{Code: ValidationInvalidInput, Message: "لطفاً خطاهای فرم را برطرف کنید", Status: http.StatusUnprocessableEntity}

	case errors.Is(err, storage.ErrFileTooLarge), errors.As(err, &maxBytesErr):
		return ErrorInfo{Code: UploadFileTooLarge, Message: "حجم فایل بیش از حد مجاز است", Status: http.StatusRequestEntityTooLarge}

	case errors.Is(err, storage.ErrContentTypeRefused):
		return ErrorInfo{Code: UploadFailed, Message: "فقط فایل تصویری (JPEG, PNG, GIF, WEBP) مجاز است", Status: http.StatusUnsupportedMediaType}

	case errors.As(err, &apiErr):
		return ErrorInfo{Code: RemoteServerError, Message: serverMessage(apiErr, context), Status: http.StatusBadGateway}

	case errors.Is(err, gymapi.ErrNetwork):
		return ErrorInfo{Code: RemoteNetworkError, Message: networkMessage(context), Status: http.StatusBadGateway}
	}

	return ErrorInfo{
		Code:    RemoteClientError,
		Message: "خطا: " + err.Error(),
		Status:  http.StatusInternalServerError,
	}
}

func serverMessage(apiErr *gymapi.APIError, context string) string {
	if context == ContextFetch {
		return fmt.Sprintf("خطای سرور: %d", apiErr.StatusCode)
	}
	msg := apiErr.Message
	if msg == "" {
		msg = "خطای ناشناخته"
	}
	return fmt.Sprintf("خطای سرور: %d - %s", apiErr.StatusCode, msg)
}

func networkMessage(context string) string {
	if context == ContextFetch {
		return "خطای شبکه: سرور پاسخگو نیست"
	}
	return "خطای شبکه: امکان اتصال به سرور نیست"
}
