package service

import (
	"context"

	"github.com/nikolayk812/sweetshop/internal/domain"
)

// Function-field mocks; a nil field means the call is unexpected and panics,
// which fails the test loudly.

type cartRepoMock struct {
	resolveOpenCart func(ctx context.Context, principal domain.Principal) (domain.Cart, error)
	getCart         func(ctx context.Context, cartID int64) (domain.Cart, error)
	addLine         func(ctx context.Context, cart domain.Cart, product domain.Product) (domain.CartLine, bool, error)
	removeLine      func(ctx context.Context, cart domain.Cart, productID int64) error
	setQuantity     func(ctx context.Context, cart domain.Cart, productID int64, quantity int) (domain.CartLine, error)
}

func (m *cartRepoMock) ResolveOpenCart(ctx context.Context, principal domain.Principal) (domain.Cart, error) {
	return m.resolveOpenCart(ctx, principal)
}

func (m *cartRepoMock) GetCart(ctx context.Context, cartID int64) (domain.Cart, error) {
	return m.getCart(ctx, cartID)
}

func (m *cartRepoMock) AddLine(ctx context.Context, cart domain.Cart, product domain.Product) (domain.CartLine, bool, error) {
	return m.addLine(ctx, cart, product)
}

func (m *cartRepoMock) RemoveLine(ctx context.Context, cart domain.Cart, productID int64) error {
	return m.removeLine(ctx, cart, productID)
}

func (m *cartRepoMock) SetQuantity(ctx context.Context, cart domain.Cart, productID int64, quantity int) (domain.CartLine, error) {
	return m.setQuantity(ctx, cart, productID, quantity)
}

type orderRepoMock struct {
	getOrder          func(ctx context.Context, orderID int64) (domain.Order, error)
	placeOrder        func(ctx context.Context, cart domain.Cart, customerID int64, input domain.OrderInput) (domain.Order, error)
	listByCustomer    func(ctx context.Context, customerID int64) ([]domain.Order, error)
	searchOrders      func(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	updateOrderStatus func(ctx context.Context, orderID int64, status domain.OrderStatus) error
}

func (m *orderRepoMock) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	return m.getOrder(ctx, orderID)
}

func (m *orderRepoMock) PlaceOrder(ctx context.Context, cart domain.Cart, customerID int64, input domain.OrderInput) (domain.Order, error) {
	return m.placeOrder(ctx, cart, customerID, input)
}

func (m *orderRepoMock) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	return m.listByCustomer(ctx, customerID)
}

func (m *orderRepoMock) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	return m.searchOrders(ctx, filter)
}

func (m *orderRepoMock) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	return m.updateOrderStatus(ctx, orderID, status)
}

type catalogRepoMock struct {
	getProduct     func(ctx context.Context, slug string) (domain.Product, error)
	listProducts   func(ctx context.Context) ([]domain.Product, error)
	listByCategory func(ctx context.Context, categorySlug string) ([]domain.Product, error)
	getCategory    func(ctx context.Context, slug string) (domain.Category, error)
	listCategories func(ctx context.Context) ([]domain.Category, error)
}

func (m *catalogRepoMock) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	return m.getProduct(ctx, slug)
}

func (m *catalogRepoMock) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.listProducts(ctx)
}

func (m *catalogRepoMock) ListByCategory(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	return m.listByCategory(ctx, categorySlug)
}

func (m *catalogRepoMock) GetCategory(ctx context.Context, slug string) (domain.Category, error) {
	return m.getCategory(ctx, slug)
}

func (m *catalogRepoMock) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return m.listCategories(ctx)
}

type customerRepoMock struct {
	insertCustomer      func(ctx context.Context, customer domain.Customer) (int64, error)
	getCustomer         func(ctx context.Context, customerID int64) (domain.Customer, error)
	getCustomerByUserID func(ctx context.Context, userID string) (domain.Customer, error)
	activateCustomer    func(ctx context.Context, userID string) error
}

func (m *customerRepoMock) InsertCustomer(ctx context.Context, customer domain.Customer) (int64, error) {
	return m.insertCustomer(ctx, customer)
}

func (m *customerRepoMock) GetCustomer(ctx context.Context, customerID int64) (domain.Customer, error) {
	return m.getCustomer(ctx, customerID)
}

func (m *customerRepoMock) GetCustomerByUserID(ctx context.Context, userID string) (domain.Customer, error) {
	return m.getCustomerByUserID(ctx, userID)
}

func (m *customerRepoMock) ActivateCustomer(ctx context.Context, userID string) error {
	return m.activateCustomer(ctx, userID)
}

type productCacheMock struct {
	get    func(ctx context.Context, slug string) (domain.Product, error)
	set    func(ctx context.Context, product domain.Product) error
	delete func(ctx context.Context, slug string) error
}

func (m *productCacheMock) Get(ctx context.Context, slug string) (domain.Product, error) {
	return m.get(ctx, slug)
}

func (m *productCacheMock) Set(ctx context.Context, product domain.Product) error {
	return m.set(ctx, product)
}

func (m *productCacheMock) Delete(ctx context.Context, slug string) error {
	return m.delete(ctx, slug)
}
