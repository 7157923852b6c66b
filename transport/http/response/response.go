package response

import (
	"encoding/json"
	"hotelres/shared/constant"
	"hotelres/shared/failure"
	"hotelres/shared/logger"
	"net/http"
)

// Data, Error and Message are the three envelopes every endpoint answers with.
// They are also what the swag annotations refer to.
type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithJSON wraps payload in the data envelope.
func WithJSON[T any](writer http.ResponseWriter, code int, payload T) {
	write(writer, code, Data[T]{Data: &payload})
}

// WithError answers with the failure code of err, or 500 for anything else.
func WithError(writer http.ResponseWriter, err error) {
	message := err.Error()

	write(writer, failure.GetCode(err), Error{Error: &message})
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
