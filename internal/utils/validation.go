package utils

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var phoneRegex = regexp.MustCompile(`^\(\d{3}\)\s\d{3}-\d{4}$|^\d{3}-\d{3}-\d{4}$|^\d{10}$`)

// 自定义规则对应的错误信息，{0} 为字段的展示名
var messages = map[string]string{
	"required":   "{0} is required",
	"email":      "Please enter a valid email address",
	"phone":      "Please enter a valid phone number",
	"department": "Department must be one of HR, Engineering, Marketing, Sales, Finance, Operations",
	"hiredate":   "Please enter a valid hire date",
	"notfuture":  "Hire date cannot be in the future",
	"salary":     "Please enter a valid salary amount",
}

// EmployeeValidator 是员工字段的唯一一套校验规则，服务端写入和客户端表单都使用它
type EmployeeValidator struct {
	validate   *validator.Validate
	translator ut.Translator
	labels     map[string]string
	now        func() time.Time
}

type ValidatorOption func(*EmployeeValidator)

// WithClock 替换判断“未来日期”时使用的当前时间
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *EmployeeValidator) {
		v.now = now
	}
}

func NewEmployeeValidator(opts ...ValidatorOption) (*EmployeeValidator, error) {
	v := &EmployeeValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		labels:   make(map[string]string),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v.validate, trans); err != nil {
		return nil, err
	}
	v.translator = trans

	// 错误中的字段名使用 json 名称，和表单字段保持一致
	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	t := reflect.TypeOf(domain.EmployeeInput{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if label := f.Tag.Get("label"); label != "" {
			v.labels[f.Name] = label
		}
	}

	validations := map[string]validator.Func{
		"phone":      validatePhone,
		"department": validateDepartment,
		"hiredate":   validateHireDate,
		"notfuture":  v.validateNotFuture,
		"salary":     validateSalary,
	}
	for tag, fn := range validations {
		if err := v.validate.RegisterValidation(tag, fn); err != nil {
			return nil, err
		}
	}

	for tag, text := range messages {
		if err := v.validate.RegisterTranslation(tag, trans, registerMessage(tag, text), v.translate); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func registerMessage(tag, text string) validator.RegisterTranslationsFunc {
	return func(trans ut.Translator) error {
		return trans.Add(tag, text, true)
	}
}

func (v *EmployeeValidator) translate(trans ut.Translator, fe validator.FieldError) string {
	label, ok := v.labels[fe.StructField()]
	if !ok {
		label = fe.Field()
	}
	msg, err := trans.T(fe.Tag(), label)
	if err != nil {
		return fe.Error()
	}
	return msg
}

// Validate 校验已经 Normalize 过的输入，失败时返回 *domain.ValidationError
func (v *EmployeeValidator) Validate(in *domain.EmployeeInput) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	verr := &domain.ValidationError{}
	for _, fe := range validationErrors {
		verr.Add(fe.Field(), fe.Translate(v.translator))
	}
	return verr
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

func validateDepartment(fl validator.FieldLevel) bool {
	return domain.Department(fl.Field().String()).Valid()
}

func validateHireDate(fl validator.FieldLevel) bool {
	_, err := domain.ParseHireDate(fl.Field().String())
	return err == nil
}

func (v *EmployeeValidator) validateNotFuture(fl validator.FieldLevel) bool {
	hireDate, err := domain.ParseHireDate(fl.Field().String())
	if err != nil {
		// 格式错误由 hiredate 规则负责
		return true
	}
	y, m, d := v.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !hireDate.After(today)
}

func validateSalary(fl validator.FieldLevel) bool {
	salary, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil {
		return false
	}
	return salary >= 0 && !math.IsInf(salary, 0)
}
