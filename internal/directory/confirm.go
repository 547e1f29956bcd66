package directory

import (
	"context"
	"errors"
	"sync"

	"github.com/Govind-Kandale-1/3Tier-website/internal/domain"
)

var ErrNothingToConfirm = errors.New("no deletion pending")

// DeleteConfirmation 是删除前的确认框，同一时间只会有一个待删除的员工
type DeleteConfirmation struct {
	mu        sync.Mutex
	store     *Store
	pendingID string
	name      string
}

func NewDeleteConfirmation(store *Store) *DeleteConfirmation {
	return &DeleteConfirmation{store: store}
}

// Request 打开确认框，员工不在列表中时不做任何事
func (d *DeleteConfirmation) Request(id string) error {
	employee, ok := d.store.Find(id)
	if !ok {
		return domain.ErrEmployeeNotFound
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.pendingID = id
	d.name = employee.Name
	return nil
}

// Pending 返回待删除员工的 ID 和姓名
func (d *DeleteConfirmation) Pending() (id, name string, open bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pendingID, d.name, d.pendingID != ""
}

// Confirm 删除待删除的员工并关闭确认框，失败时确认框也会关闭
func (d *DeleteConfirmation) Confirm(ctx context.Context) error {
	d.mu.Lock()
	id := d.pendingID
	d.pendingID, d.name = "", ""
	d.mu.Unlock()

	if id == "" {
		return ErrNothingToConfirm
	}
	return d.store.Delete(ctx, id)
}

func (d *DeleteConfirmation) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pendingID, d.name = "", ""
}
