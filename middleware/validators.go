package middleware

import (
	"log"

	"villa-backend/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func enumValidator[T ~string](fn func(T) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return fn(T(fl.Field().String()))
	}
}

// RegisterValidators adds the enum tags used in request bindings to gin's
// validator engine. Safe to call more than once.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		log.Println("⚠️  gin validator engine is not go-playground/validator; enum tags disabled")
		return
	}
	rules := map[string]validator.Func{
		"booking_status": enumValidator(models.BookingStatus.IsValid),
		"payment_status": enumValidator(models.PaymentStatus.IsValid),
		"villa_status":   enumValidator(models.VillaStatus.IsValid),
		"safari_status":  enumValidator(models.SafariStatus.IsValid),
		"block_type":     enumValidator(models.BlockType.IsValid),
		"unit_status":    enumValidator(models.UnitStatus.IsValid),
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Printf("⚠️  failed to register validator %s: %v", tag, err)
		}
	}
}
