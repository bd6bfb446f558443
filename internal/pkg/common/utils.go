package common

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteErrorResponse 以統一格式寫入錯誤響應
func WriteErrorResponse(w http.ResponseWriter, cerr *CustomError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(cerr.Status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Code:    cerr.Code,
		Message: cerr.Message,
	})
}
