package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/smartdrive/voicebot-backend/internal/models"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// NLURequest is the body of POST /api/nlu
type NLURequest struct {
	Utterance *string `json:"utterance" validate:"required,max=1000"`
}

// OrderRequest is the body of POST /api/pos/order
type OrderRequest struct {
	Order *models.OrderDraft `json:"order" validate:"required"`
}

// decodeRequest decodes a JSON body into dst and validates it
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
