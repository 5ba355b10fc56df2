package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/base14/examples/gin-product-catalog/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail  interface{} `json:"detail"`
	TraceID string      `json:"trace_id,omitempty"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		models.RegisterValidators(v)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// respondError records err on the span in ctx and aborts with the detail body.
func respondError(ctx context.Context, c *gin.Context, status int, detail interface{}, err error) {
	span := trace.SpanFromContext(ctx)
	if err != nil {
		span.RecordError(err)
	}
	span.SetStatus(codes.Error, fmt.Sprint(detail))

	resp := ErrorResponse{Detail: detail}
	if sc := span.SpanContext(); sc.HasTraceID() {
		resp.TraceID = sc.TraceID().String()
	}
	c.AbortWithStatusJSON(status, resp)
}

// bindingDetail turns a bind error into the 422 detail: a field list for
// validation failures, the decoder message otherwise.
func bindingDetail(err error) interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		if errors.Is(err, io.EOF) {
			return "request body is required"
		}
		return "invalid request body: " + err.Error()
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "notnull":
		return "may not be null"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be less than or equal to " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be greater than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
