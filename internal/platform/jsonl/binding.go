package jsonl

import (
	"net/http"

	"github.com/gin-gonic/gin/binding"

	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
)

// Binding is the read side of the JSON Lines media type.
// Reading is not supported, so every bind fails with a
// *domain.UnsupportedOperationError.
var Binding binding.BindingBody = readBinding{}

type readBinding struct{}

func (readBinding) Name() string {
	return formatName
}

func (readBinding) Bind(*http.Request, any) error {
	return domain.NewUnsupportedOperationError("jsonl encoder", "reading request bodies")
}

func (readBinding) BindBody([]byte, any) error {
	return domain.NewUnsupportedOperationError("jsonl encoder", "reading request bodies")
}
