package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin/binding"
)

// formJSON binds request bodies that carry caller-defined form_data.
// Numbers are kept as json.Number so integers beyond 2^53 survive intact.
var formJSON binding.Binding = numberJSONBinding{}

type numberJSONBinding struct{}

func (numberJSONBinding) Name() string {
	return "json"
}

func (numberJSONBinding) Bind(req *http.Request, obj any) error {
	if req == nil || req.Body == nil {
		return errors.New("invalid request")
	}
	decoder := json.NewDecoder(req.Body)
	decoder.UseNumber()
	if err := decoder.Decode(obj); err != nil {
		return err
	}
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(obj)
}
