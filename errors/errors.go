package errors

/*
* Error codes convey the reason a registry request could not be served as a
* normal page. They are combined with an HTTP status code by the caller but do
* not replace it: NotFound for a valid name and for an invalid name both map to
* HTTP 404, the code only tells the page whether to show the "publish this"
* encouragement.
*
* Error messages are safe to show to end users. Store and cache detail is
* logged where it happens and never copied into ErrorMessage.
 */

const (

	// HTTP 404 Not Found.
	// The package does not exist but the name could be published.
	PackageNotFound ErrCode = 1
	// The package does not exist and the name breaks the naming rules.
	InvalidPackageName ErrCode = 2

	// HTTP 410 Gone.
	// The package was unpublished.
	Unpublished ErrCode = 3

	// HTTP 401 Unauthorized.
	// The session id is unknown to the cache.
	InvalidSession ErrCode = 4

	// HTTP 400 Bad Request.
	// Browse kind is not one of the supported lists.
	UnknownBrowseKind ErrCode = 5

	// HTTP 500 Internal Server Error.
	// Store failure, malformed package record or cache failure.
	InternalError ErrCode = 6
)

// RegistryError implements the Error interface.
type RegistryError struct {
	Function     string  `json:"-"`
	ErrorCode    ErrCode `json:"errorCode"`
	ErrorMessage string  `json:"errorDetail"`
}

type ErrCode uint8

func (e RegistryError) Error() string {
	return e.ErrorMessage
}

func New(function string, errCode ErrCode, errMessage string) error {
	return &RegistryError{
		Function:     function,
		ErrorCode:    errCode,
		ErrorMessage: errMessage,
	}
}

// Code returns the ErrCode carried by err, or 0 when err is not a
// RegistryError
func Code(err error) ErrCode {
	if re, ok := err.(*RegistryError); ok {
		return re.ErrorCode
	}
	return 0
}
