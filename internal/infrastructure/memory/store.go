// Package memory implementa los puertos de repositorio en memoria.
// Se usa en modo demo (APP_DEMO_MODE=true) y como fake en los tests de casos de uso.
package memory

import (
	"sync"

	"github.com/shyakx/erp-system/internal/domain/entity"
)

type tables struct {
	users        map[string]*entity.User
	accounts     map[string]*entity.Account
	transactions []*entity.Transaction
	items        map[string]*entity.InventoryItem
	movements    []*entity.InventoryMovement
	employees    map[string]*entity.Employee
	attendance   map[string]*entity.AttendanceRecord
	payroll      map[string]*entity.PayrollRecord
}

func newTables() *tables {
	return &tables{
		users:      make(map[string]*entity.User),
		accounts:   make(map[string]*entity.Account),
		items:      make(map[string]*entity.InventoryItem),
		employees:  make(map[string]*entity.Employee),
		attendance: make(map[string]*entity.AttendanceRecord),
		payroll:    make(map[string]*entity.PayrollRecord),
	}
}

// clone copia los índices; las entidades se comparten y nunca se mutan en sitio
// (las escrituras reemplazan el puntero).
func (t *tables) clone() *tables {
	c := &tables{
		users:        make(map[string]*entity.User, len(t.users)),
		accounts:     make(map[string]*entity.Account, len(t.accounts)),
		transactions: append([]*entity.Transaction(nil), t.transactions...),
		items:        make(map[string]*entity.InventoryItem, len(t.items)),
		movements:    append([]*entity.InventoryMovement(nil), t.movements...),
		employees:    make(map[string]*entity.Employee, len(t.employees)),
		attendance:   make(map[string]*entity.AttendanceRecord, len(t.attendance)),
		payroll:      make(map[string]*entity.PayrollRecord, len(t.payroll)),
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.accounts {
		c.accounts[k] = v
	}
	for k, v := range t.items {
		c.items[k] = v
	}
	for k, v := range t.employees {
		c.employees[k] = v
	}
	for k, v := range t.attendance {
		c.attendance[k] = v
	}
	for k, v := range t.payroll {
		c.payroll[k] = v
	}
	return c
}

// Store estado compartido. Las escrituras se serializan con txMu; una transacción
// trabaja sobre una copia y al confirmar la publica de una vez.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	t    *tables
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{t: newTables()}
}

// read ejecuta fn sobre la vista de la tx o, fuera de tx, sobre el estado publicado.
func (s *Store) read(tx *tables, fn func(t *tables)) {
	if tx != nil {
		fn(tx)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.t)
}

// write fuera de tx equivale a una transacción de una sola sentencia.
func (s *Store) write(tx *tables, fn func(t *tables) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.t)
}

// inTx ejecuta fn sobre una copia; si fn devuelve nil la copia pasa a ser el estado.
func (s *Store) inTx(fn func(tx *tables) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	view := s.t.clone()
	s.mu.RUnlock()

	if err := fn(view); err != nil {
		return err
	}
	s.mu.Lock()
	s.t = view
	s.mu.Unlock()
	return nil
}
