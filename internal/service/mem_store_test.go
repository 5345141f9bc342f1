package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mira-tu/FinalFlower-sub001/internal/domain/model"
	"github.com/mira-tu/FinalFlower-sub001/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

// memData 測試用資料，ExecTx 會複製一份，成功才寫回
type memData struct {
	products      map[int64]model.Product
	orders        map[int64]model.Order
	carts         map[uuid.UUID]map[int64]model.CartLine
	nextProductID int64
	nextOrderID   int64
	nextItemID    int64
	seq           int64
}

func newMemData() *memData {
	return &memData{
		products: map[int64]model.Product{},
		orders:   map[int64]model.Order{},
		carts:    map[uuid.UUID]map[int64]model.CartLine{},
	}
}

func cloneOrder(o model.Order) model.Order {
	o.Items = slices.Clone(o.Items)
	return o
}

func (d *memData) clone() *memData {
	c := *d
	c.products = make(map[int64]model.Product, len(d.products))
	for k, v := range d.products {
		c.products[k] = v
	}
	c.orders = make(map[int64]model.Order, len(d.orders))
	for k, v := range d.orders {
		c.orders[k] = cloneOrder(v)
	}
	c.carts = make(map[uuid.UUID]map[int64]model.CartLine, len(d.carts))
	for user, lines := range d.carts {
		m := make(map[int64]model.CartLine, len(lines))
		for k, v := range lines {
			m[k] = v
		}
		c.carts[user] = m
	}
	return &c
}

type memQuerier struct {
	mu *sync.Mutex
	d  *memData

	// failCreateOrder 模擬寫入明細時失敗
	failCreateOrder error

	// beforePaymentUpdate 模擬讀取後、條件更新前其他交易的提交
	beforePaymentUpdate func(d *memData)
}

type memStore struct {
	*memQuerier
	txMu                sync.Mutex
	failCreateOrder     error
	beforePaymentUpdate func(d *memData)
}

func newMemStore() *memStore {
	return &memStore{memQuerier: &memQuerier{mu: &sync.Mutex{}, d: newMemData()}}
}

func (s *memStore) ExecTx(ctx context.Context, fn func(db.Querier) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.d.clone()
	s.mu.Unlock()

	tx := &memQuerier{mu: &sync.Mutex{}, d: snapshot, failCreateOrder: s.failCreateOrder, beforePaymentUpdate: s.beforePaymentUpdate}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.d = snapshot
	s.mu.Unlock()
	return nil
}

func (s *memStore) Close() error { return nil }

// addProduct 測試資料
func (s *memStore) addProduct(name string, price int64, stock int) model.Product {
	p := &model.Product{Name: name, Price: decimal.NewFromInt(price), Stock: stock, IsActive: true}
	if err := s.CreateProduct(context.Background(), p); err != nil {
		panic(err)
	}
	return *p
}

func (s *memStore) product(id int64) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.products[id]
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.d.orders)
}

func (s *memStore) order(id int64) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneOrder(s.d.orders[id])
}

func (q *memQuerier) CreateProduct(_ context.Context, product *model.Product) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, p := range q.d.products {
		if p.Name == product.Name {
			return db.ErrDuplicateKey
		}
	}
	q.d.nextProductID++
	product.ID = q.d.nextProductID
	q.d.products[product.ID] = *product
	return nil
}

func (q *memQuerier) CreateProductIfNotExists(_ context.Context, product *model.Product) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, p := range q.d.products {
		if p.Name == product.Name {
			*product = p
			return nil
		}
	}
	q.d.nextProductID++
	product.ID = q.d.nextProductID
	q.d.products[product.ID] = *product
	return nil
}

func (q *memQuerier) GetProductByID(_ context.Context, id int64) (*model.Product, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p, ok := q.d.products[id]
	if !ok {
		return nil, db.ErrProductNotFound
	}
	return &p, nil
}

func (q *memQuerier) ListProducts(_ context.Context, onlyActive bool) ([]model.Product, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var products []model.Product
	for _, p := range q.d.products {
		if onlyActive && !p.IsActive {
			continue
		}
		products = append(products, p)
	}
	slices.SortFunc(products, func(a, b model.Product) int { return int(a.ID - b.ID) })
	return products, nil
}

func (q *memQuerier) UpdateProduct(_ context.Context, product *model.Product) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	current, ok := q.d.products[product.ID]
	if !ok {
		return db.ErrProductNotFound
	}
	product.BaseModel = current.BaseModel
	q.d.products[product.ID] = *product
	return nil
}

func (q *memQuerier) DeductProductStock(_ context.Context, id int64, quantity int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	p, ok := q.d.products[id]
	if !ok || p.Stock < quantity {
		return db.ErrProductStockNotEnough
	}
	p.Stock -= quantity
	q.d.products[id] = p
	return nil
}

func (q *memQuerier) AddProductStock(_ context.Context, id int64, quantity int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	p, ok := q.d.products[id]
	if !ok {
		return db.ErrProductNotFound
	}
	p.Stock += quantity
	q.d.products[id] = p
	return nil
}

func (q *memQuerier) NextOrderNumber(_ context.Context, now time.Time) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.d.seq++
	return db.FormatOrderNumber(now, q.d.seq), nil
}

func (q *memQuerier) CreateOrder(_ context.Context, order *model.Order) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, o := range q.d.orders {
		if o.OrderNumber == order.OrderNumber {
			return db.ErrDuplicateKey
		}
	}
	q.d.nextOrderID++
	order.ID = q.d.nextOrderID
	for i := range order.Items {
		if q.failCreateOrder != nil && i == len(order.Items)-1 {
			return q.failCreateOrder
		}
		q.d.nextItemID++
		order.Items[i].ID = q.d.nextItemID
		order.Items[i].OrderID = order.ID
	}
	q.d.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (q *memQuerier) GetOrderByID(_ context.Context, id int64) (*model.Order, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	o, ok := q.d.orders[id]
	if !ok {
		return nil, db.ErrOrderNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (q *memQuerier) ListOrders(_ context.Context, arg db.ListOrdersParams) ([]model.Order, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var orders []model.Order
	for _, o := range q.d.orders {
		if arg.UserID != nil && o.UserID != *arg.UserID {
			continue
		}
		if arg.Status != nil && o.Status != *arg.Status {
			continue
		}
		o.Items = nil
		orders = append(orders, o)
	}
	slices.SortFunc(orders, func(a, b model.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	if arg.Offset >= len(orders) {
		return nil, nil
	}
	orders = orders[arg.Offset:]
	if arg.Limit > 0 && arg.Limit < len(orders) {
		orders = orders[:arg.Limit]
	}
	return orders, nil
}

func (q *memQuerier) UpdateOrderStatus(_ context.Context, arg db.UpdateOrderStatusParams) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	o, ok := q.d.orders[arg.ID]
	if !ok || !slices.Contains(arg.From, o.Status) {
		return false, nil
	}
	if arg.UserID != nil && o.UserID != *arg.UserID {
		return false, nil
	}
	o.Status = arg.To
	q.d.orders[arg.ID] = o
	return true, nil
}

func (q *memQuerier) UpdatePaymentStatus(_ context.Context, arg db.UpdatePaymentStatusParams) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.beforePaymentUpdate != nil {
		q.beforePaymentUpdate(q.d)
	}
	o, ok := q.d.orders[arg.ID]
	if !ok || !slices.Contains(arg.From, o.PaymentStatus) {
		return false, nil
	}
	if arg.UserID != nil && o.UserID != *arg.UserID {
		return false, nil
	}
	if slices.Contains(arg.ExcludeStatuses, o.Status) {
		return false, nil
	}
	o.PaymentStatus = arg.To
	if arg.PaymentType != nil {
		o.PaymentType = arg.PaymentType
	}
	if arg.ReceiptURL != nil {
		o.ReceiptURL = arg.ReceiptURL
	}
	if arg.PaidAt != nil {
		o.PaidAt = arg.PaidAt
	}
	q.d.orders[arg.ID] = o
	return true, nil
}

func (q *memQuerier) ListCartLines(_ context.Context, userID uuid.UUID) ([]model.CartLine, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var lines []model.CartLine
	for _, line := range q.d.carts[userID] {
		lines = append(lines, line)
	}
	slices.SortFunc(lines, func(a, b model.CartLine) int { return int(a.ProductID - b.ProductID) })
	return lines, nil
}

func (q *memQuerier) UpsertCartLine(_ context.Context, line *model.CartLine) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.d.carts[line.UserID] == nil {
		q.d.carts[line.UserID] = map[int64]model.CartLine{}
	}
	q.d.carts[line.UserID][line.ProductID] = *line
	return nil
}

func (q *memQuerier) DeleteCartLine(_ context.Context, userID uuid.UUID, productID int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.d.carts[userID], productID)
	return nil
}

func (q *memQuerier) DeleteCartLines(_ context.Context, userID uuid.UUID, productIDs []int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, id := range productIDs {
		delete(q.d.carts[userID], id)
	}
	return nil
}

var _ db.IStore = (*memStore)(nil)
