package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
)

type FormState int

const (
	FormIdle FormState = iota
	FormEditing
	FormSubmitting
)

func (s FormState) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormEditing:
		return "editing"
	case FormSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("FormState(%d)", int(s))
}

var (
	ErrFormNotOpen  = errors.New("form is not open")
	ErrFormLocked   = errors.New("form is being submitted")
	ErrUnknownField = errors.New("unknown form field")
)

// Form 是新增和编辑员工共用的表单。
// Idle -> Editing -> Submitting，成功后回到 Idle，失败后回到 Editing 并保留输入。
type Form struct {
	mu        sync.Mutex
	store     *Store
	state     FormState
	editingID string
	values    domain.EmployeeInput
	errors    map[string]string
}

func NewForm(store *Store) *Form {
	return &Form{
		store:  store,
		errors: make(map[string]string),
	}
}

// OpenCreate 打开空白表单
func (f *Form) OpenCreate() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == FormSubmitting {
		return ErrFormLocked
	}
	f.reset()
	f.state = FormEditing
	return nil
}

// OpenEdit 用已有员工填充表单
func (f *Form) OpenEdit(id string) error {
	employee, ok := f.store.Find(id)
	if !ok {
		return domain.ErrEmployeeNotFound
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == FormSubmitting {
		return ErrFormLocked
	}
	f.reset()
	f.state = FormEditing
	f.editingID = id
	f.values = domain.InputFromEmployee(employee)
	return nil
}

func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// EditingID 为空表示新增
func (f *Form) EditingID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID
}

func (f *Form) Title() string {
	if f.EditingID() != "" {
		return "Edit Employee"
	}
	return "Add New Employee"
}

func (f *Form) SubmitLabel() string {
	if f.EditingID() != "" {
		return "Update Employee"
	}
	return "Add Employee"
}

func (f *Form) Values() domain.EmployeeInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors 返回每个字段当前显示的错误
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return errs
}

// Set 修改一个字段并清除它的错误，field 使用 json 名称
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case FormIdle:
		return ErrFormNotOpen
	case FormSubmitting:
		return ErrFormLocked
	}

	switch field {
	case "name":
		f.values.Name = value
	case "email":
		f.values.Email = value
	case "phone":
		f.values.Phone = value
	case "department":
		f.values.Department = value
	case "position":
		f.values.Position = value
	case "hireDate":
		f.values.HireDate = value
	case "salary":
		f.values.Salary = json.Number(value)
	case "address":
		f.values.Address = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	delete(f.errors, field)
	return nil
}

// Submit 校验并提交表单。字段错误写入 Errors() 并返回 *domain.ValidationError，
// 网络等其他错误原样返回，两种情况表单都回到 Editing。
func (f *Form) Submit(ctx context.Context) (*domain.Employee, error) {
	f.mu.Lock()
	switch f.state {
	case FormIdle:
		f.mu.Unlock()
		return nil, ErrFormNotOpen
	case FormSubmitting:
		f.mu.Unlock()
		return nil, ErrFormLocked
	}
	f.state = FormSubmitting
	f.errors = make(map[string]string)
	id, values := f.editingID, f.values
	f.mu.Unlock()

	var (
		employee *domain.Employee
		err      error
	)
	if id == "" {
		employee, err = f.store.Create(ctx, values)
	} else {
		employee, err = f.store.Update(ctx, id, values)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = FormEditing
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for _, fe := range verr.Errors {
				f.errors[fe.Field] = fe.Message
			}
		}
		return nil, err
	}

	f.reset()
	return employee, nil
}

// Cancel 放弃编辑，提交过程中不能取消
func (f *Form) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == FormSubmitting {
		return ErrFormLocked
	}
	f.reset()
	return nil
}

func (f *Form) reset() {
	f.state = FormIdle
	f.editingID = ""
	f.values = domain.EmployeeInput{}
	f.errors = make(map[string]string)
}
