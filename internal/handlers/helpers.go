package handlers

import (
	"fmt"
	"reflect"

	"ordermgr/internal/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// RegisterParsers teaches Fiber's form and query decoders about
// decimal.Decimal and submittedPrice so prices can be posted from HTML forms.
func RegisterParsers() {
	fiber.SetParserDecoder(fiber.ParserConfig{
		IgnoreUnknownKeys: true,
		ZeroEmpty:         true,
		ParserType: []fiber.ParserType{
			{
				Customtype: decimal.Decimal{},
				Converter: func(value string) reflect.Value {
					d, err := decimal.NewFromString(value)
					if err != nil {
						return reflect.Value{}
					}
					return reflect.ValueOf(d)
				},
			},
			{
				Customtype: submittedPrice{},
				Converter: func(value string) reflect.Value {
					d, err := decimal.NewFromString(value)
					if err != nil {
						return reflect.Value{}
					}
					return reflect.ValueOf(submittedPrice{value: d, set: true})
				},
			},
		},
	})
}

// submittedPrice is a price field that remembers whether the request carried
// it, so an absent price is not mistaken for zero.
type submittedPrice struct {
	value decimal.Decimal
	set   bool
}

func (p *submittedPrice) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = submittedPrice{}
		return nil
	}
	if err := p.value.UnmarshalJSON(data); err != nil {
		return err
	}
	p.set = true
	return nil
}

func (p submittedPrice) ptr() *decimal.Decimal {
	if !p.set {
		return nil
	}
	return &p.value
}

// paramID reads a positive integer route parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errs.InvalidInput(fmt.Sprintf("%s must be a positive integer, got %q", name, c.Params(name)))
	}
	return uint(id), nil
}

// parseBody decodes a JSON or form body into out.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errs.InvalidInput(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

func deleted(c *fiber.Ctx, entity string, id uint) error {
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s %d deleted successfully", entity, id),
	})
}
