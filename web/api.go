package web

import (
	"encoding/json"
	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"io"
	"net/http"
	"nlsql/pipeline"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{
		Error: message,
	}
}

func StartServer(port string) {
	r := initRouter()
	sigolo.Infof("Start server on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

func initRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/translate", handleTranslate).Methods(http.MethodPost)
	return r
}

// handleTranslate reads the raw query text from the request body and returns
// the full translation result as JSON. Translation itself cannot fail, a
// query no path understands still produces a result with a sentinel SQL
// string.
func handleTranslate(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Access-Control-Allow-Origin", "*")
	writer.Header().Set("Content-Type", "application/json")

	queryBytes, err := io.ReadAll(request.Body)
	if err != nil {
		sigolo.Errorf("Error reading HTTP body of request to '/translate': %+v", err)
		writeError(writer, http.StatusInternalServerError, "Error reading HTTP body.")
		return
	}

	queryString := string(queryBytes)
	sigolo.Infof("Query: %s", queryString)

	result := pipeline.Process(queryString)
	sigolo.Debugf("Translated via %q into %q", result.Method, result.SQL)

	resultBytes, err := json.Marshal(result)
	if err != nil {
		sigolo.Errorf("Error marshalling translation result: %+v", err)
		writeError(writer, http.StatusInternalServerError, "Error marshalling translation result.")
		return
	}

	_, err = writer.Write(resultBytes)
	if err != nil {
		sigolo.Errorf("Error writing translation result: %+v", err)
	}
}

func writeError(writer http.ResponseWriter, statusCode int, message string) {
	writer.WriteHeader(statusCode)

	errorResponseBytes, err := json.Marshal(NewErrorResponse(message))
	if err != nil {
		sigolo.Errorf("Error creating and marshalling error response object: %+v", err)
	}

	_, err = writer.Write(errorResponseBytes)
	if err != nil {
		sigolo.Errorf("Error writing error response: %+v", err)
	}
}
