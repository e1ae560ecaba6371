package validation

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jucamargo/juju-library/pkg/response"
)

// Source says where a rule reads its field from.
type Source int

const (
	SourceBody Source = iota
	SourceParam
)

// AsyncCheck asks a collaborator (usually storage) whether the value satisfies
// the rule. ok=false fails the rule; a non-nil error means the collaborator
// itself failed and the request cannot be judged at all.
type AsyncCheck func(ctx context.Context, value string) (ok bool, err error)

// Rule is one declarative check against one request field. Tags holds a
// validator/v10 tag expression for synchronous checks ("required", "email",
// "uuid", "min=8"); Check, when set, runs an asynchronous existence or
// uniqueness query instead. Message is reported verbatim on failure.
type Rule struct {
	Field   string
	Source  Source
	Tags    string
	Check   AsyncCheck
	Message string
}

// Body declares a synchronous rule on a JSON body field.
func Body(field, tags, message string) Rule {
	return Rule{Field: field, Source: SourceBody, Tags: tags, Message: message}
}

// Param declares a synchronous rule on a path parameter.
func Param(field, tags, message string) Rule {
	return Rule{Field: field, Source: SourceParam, Tags: tags, Message: message}
}

// BodyCheck declares an asynchronous rule on a JSON body field.
func BodyCheck(field string, check AsyncCheck, message string) Rule {
	return Rule{Field: field, Source: SourceBody, Check: check, Message: message}
}

// ParamCheck declares an asynchronous rule on a path parameter.
func ParamCheck(field string, check AsyncCheck, message string) Rule {
	return Rule{Field: field, Source: SourceParam, Check: check, Message: message}
}

var validate = validator.New()

// Guard returns a middleware that evaluates every rule in declared order and
// aggregates all failures before responding. A failing rule never stops the
// rules after it from running; the request is rejected with 400 and the full
// {field, message} list only after the whole chain has been evaluated. The
// handler runs only when the failure set is empty. If an async collaborator
// errors out, the request is rejected with 500 instead, since none of the
// remaining judgement can be trusted.
func Guard(rules ...Rule) gin.HandlerFunc {
	needsBody := false
	for _, r := range rules {
		if r.Source == SourceBody {
			needsBody = true
			break
		}
	}

	return func(c *gin.Context) {
		var body map[string]any
		if needsBody {
			// Cached read: handlers re-bind the same body into typed structs.
			_ = c.ShouldBindBodyWith(&body, binding.JSON)
		}

		var errs []response.ErrorItem
		for _, r := range rules {
			val := fieldValue(c, body, r)
			if r.Check != nil {
				ok, err := r.Check(c.Request.Context(), val)
				if err != nil {
					response.Error(c, http.StatusInternalServerError, "could not validate request")
					c.Abort()
					return
				}
				if !ok {
					errs = append(errs, response.ErrorItem{Field: r.Field, Message: r.Message})
				}
				continue
			}
			if err := validate.Var(val, r.Tags); err != nil {
				errs = append(errs, response.ErrorItem{Field: r.Field, Message: r.Message})
			}
		}

		if len(errs) > 0 {
			response.Fail(c, http.StatusBadRequest, errs...)
			c.Abort()
			return
		}
		c.Next()
	}
}

// fieldValue extracts a rule's value as a string. Missing body fields come
// back empty so that "required" fails them; non-string JSON values (booleans,
// numbers) are stringified for presence checks.
func fieldValue(c *gin.Context, body map[string]any, r Rule) string {
	if r.Source == SourceParam {
		return c.Param(r.Field)
	}
	v, ok := body[r.Field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
