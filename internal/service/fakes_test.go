package service

import (
	"context"
	"strings"
	"sync"

	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/messaging"
	"github.com/vinylstore/backend/internal/repository"
)

// In-memory fakes for the repository interfaces, guarded by a mutex so tests
// can exercise the services without a database.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]entity.User{}, nextID: 1}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, entity.NewNotFound("user", id)
	}
	return &u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, entity.NewNotFound("user", email)
}

func (f *fakeUserRepo) FindByRUT(_ context.Context, rut string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.RUT == rut {
			u := u
			return &u, nil
		}
	}
	return nil, entity.NewNotFound("user", rut)
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByRUT(_ context.Context, rut string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.RUT == rut {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return entity.NewNotFound("user", user.ID)
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return entity.NewNotFound("user", id)
	}
	delete(f.users, id)
	return nil
}

type fakeArtistRepo struct {
	mu      sync.Mutex
	artists map[int64]entity.Artist
	nextID  int64
}

func newFakeArtistRepo() *fakeArtistRepo {
	return &fakeArtistRepo{artists: map[int64]entity.Artist{}, nextID: 1}
}

func (f *fakeArtistRepo) FindByID(_ context.Context, id int64) (*entity.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.artists[id]
	if !ok {
		return nil, entity.NewNotFound("artist", id)
	}
	return &a, nil
}

func (f *fakeArtistRepo) FindByName(_ context.Context, name string) (*entity.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.artists {
		if a.Name == name {
			a := a
			return &a, nil
		}
	}
	return nil, entity.NewNotFound("artist", name)
}

func (f *fakeArtistRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.artists {
		if a.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeArtistRepo) SearchByName(_ context.Context, name string) ([]entity.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Artist
	for _, a := range f.artists {
		if strings.Contains(strings.ToLower(a.Name), strings.ToLower(name)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeArtistRepo) FindAll(_ context.Context) ([]entity.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Artist
	for _, a := range f.artists {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeArtistRepo) Create(_ context.Context, artist *entity.Artist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	artist.ID = f.nextID
	f.nextID++
	f.artists[artist.ID] = *artist
	return nil
}

func (f *fakeArtistRepo) Update(_ context.Context, artist *entity.Artist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.artists[artist.ID]; !ok {
		return entity.NewNotFound("artist", artist.ID)
	}
	f.artists[artist.ID] = *artist
	return nil
}

func (f *fakeArtistRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.artists[id]; !ok {
		return entity.NewNotFound("artist", id)
	}
	delete(f.artists, id)
	return nil
}

type fakeLabelRepo struct {
	mu     sync.Mutex
	labels map[int64]entity.Label
	nextID int64
}

func newFakeLabelRepo() *fakeLabelRepo {
	return &fakeLabelRepo{labels: map[int64]entity.Label{}, nextID: 1}
}

func (f *fakeLabelRepo) FindByID(_ context.Context, id int64) (*entity.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.labels[id]
	if !ok {
		return nil, entity.NewNotFound("label", id)
	}
	return &l, nil
}

func (f *fakeLabelRepo) FindByName(_ context.Context, name string) (*entity.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.labels {
		if l.Name == name {
			l := l
			return &l, nil
		}
	}
	return nil, entity.NewNotFound("label", name)
}

func (f *fakeLabelRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.labels {
		if l.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLabelRepo) FindAll(_ context.Context) ([]entity.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Label
	for _, l := range f.labels {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLabelRepo) Create(_ context.Context, label *entity.Label) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	label.ID = f.nextID
	f.nextID++
	f.labels[label.ID] = *label
	return nil
}

func (f *fakeLabelRepo) Update(_ context.Context, label *entity.Label) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.labels[label.ID]; !ok {
		return entity.NewNotFound("label", label.ID)
	}
	f.labels[label.ID] = *label
	return nil
}

func (f *fakeLabelRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.labels[id]; !ok {
		return entity.NewNotFound("label", id)
	}
	delete(f.labels, id)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]entity.Product
	artists  *fakeArtistRepo
}

func newFakeProductRepo(artists *fakeArtistRepo) *fakeProductRepo {
	return &fakeProductRepo{products: map[string]entity.Product{}, artists: artists}
}

func (f *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[sku]
	if !ok {
		return nil, entity.NewNotFound("product", sku)
	}
	return &p, nil
}

func (f *fakeProductRepo) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.products[sku]
	return ok, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context) ([]entity.Product, error) {
	return f.filter(func(entity.Product) bool { return true }), nil
}

func (f *fakeProductRepo) FindAvailable(_ context.Context) ([]entity.Product, error) {
	return f.filter(func(p entity.Product) bool { return p.IsAvailable }), nil
}

func (f *fakeProductRepo) FindByArtist(_ context.Context, artistID int64) ([]entity.Product, error) {
	return f.filter(func(p entity.Product) bool { return p.ArtistID == artistID }), nil
}

func (f *fakeProductRepo) FindByFormatType(_ context.Context, formatType string) ([]entity.Product, error) {
	return f.filter(func(p entity.Product) bool { return p.FormatType == formatType }), nil
}

func (f *fakeProductRepo) SearchByTitle(_ context.Context, title string) ([]entity.Product, error) {
	return f.filter(func(p entity.Product) bool {
		return strings.Contains(strings.ToLower(p.Title), strings.ToLower(title))
	}), nil
}

func (f *fakeProductRepo) SearchByArtistName(ctx context.Context, artistName string) ([]entity.Product, error) {
	matches, err := f.artists.SearchByName(ctx, artistName)
	if err != nil {
		return nil, err
	}
	ids := map[int64]bool{}
	for _, a := range matches {
		ids[a.ID] = true
	}
	return f.filter(func(p entity.Product) bool { return ids[p.ArtistID] }), nil
}

func (f *fakeProductRepo) filter(keep func(entity.Product) bool) []entity.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Product
	for _, p := range f.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.SKU] = *product
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[product.SKU]; !ok {
		return entity.NewNotFound("product", product.SKU)
	}
	f.products[product.SKU] = *product
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, sku string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[sku]; !ok {
		return entity.NewNotFound("product", sku)
	}
	delete(f.products, sku)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[int64]entity.Order
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]entity.Order{}, nextID: 1}
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id int64) (*entity.OrderDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, entity.NewNotFound("order", id)
	}
	return &entity.OrderDetail{Order: o}, nil
}

func (f *fakeOrderRepo) Find(_ context.Context, filter repository.OrderFilter) ([]entity.OrderDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.OrderDetail
	for _, o := range f.orders {
		if matchesFilter(o, filter) {
			out = append(out, entity.OrderDetail{Order: o})
		}
	}
	return out, nil
}

// matchesFilter mirrors the SQL conjunction semantics of the Postgres
// repository: nil fields are ignored, non-nil fields must all hold.
func matchesFilter(o entity.Order, filter repository.OrderFilter) bool {
	if filter.Start != nil && o.OrderDate.Before(*filter.Start) {
		return false
	}
	if filter.End != nil && o.OrderDate.After(*filter.End) {
		return false
	}
	if filter.Status != nil && o.Status != *filter.Status {
		return false
	}
	if filter.ResponsibleID != nil {
		if o.ResponsibleID == nil || *o.ResponsibleID != *filter.ResponsibleID {
			return false
		}
	}
	return true
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = f.nextID
	f.nextID++
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[order.ID]; !ok {
		return entity.NewNotFound("order", order.ID)
	}
	f.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return entity.NewNotFound("order", id)
	}
	delete(f.orders, id)
	return nil
}

type fakeCartRepo struct {
	mu         sync.Mutex
	cartsByUser map[int64]entity.Cart
	nextCartID int64
	nextItemID int64
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{cartsByUser: map[int64]entity.Cart{}, nextCartID: 1, nextItemID: 1}
}

func copyCart(c entity.Cart) entity.Cart {
	items := make([]entity.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}

func (f *fakeCartRepo) FindByUser(_ context.Context, userID int64) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cartsByUser[userID]
	if !ok {
		return nil, entity.NewNotFound("cart", userID)
	}
	c = copyCart(c)
	return &c, nil
}

func (f *fakeCartRepo) CreateForUser(_ context.Context, userID int64) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.cartsByUser[userID]; ok {
		c = copyCart(c)
		return &c, nil
	}
	c := entity.Cart{ID: f.nextCartID, UserID: userID}
	f.nextCartID++
	f.cartsByUser[userID] = c
	c = copyCart(c)
	return &c, nil
}

func (f *fakeCartRepo) Save(_ context.Context, cart *entity.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range cart.Items {
		if cart.Items[i].ID == 0 {
			cart.Items[i].ID = f.nextItemID
			f.nextItemID++
			cart.Items[i].CartID = cart.ID
		}
	}
	f.cartsByUser[cart.UserID] = copyCart(*cart)
	return nil
}

// capturePublisher records published events instead of talking to a broker.
type capturePublisher struct {
	mu     sync.Mutex
	events []entity.Event
	topics []string
}

var _ messaging.Publisher = (*capturePublisher)(nil)

func (p *capturePublisher) PublishEvent(_ context.Context, topic string, _ string, event entity.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	p.topics = append(p.topics, topic)
	return nil
}
