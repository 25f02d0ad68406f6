package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"chakai-booking/internal/data/entity"
	"chakai-booking/internal/data/repository"
	"chakai-booking/internal/notify"
	"chakai-booking/pkg/storage"
	"chakai-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type memTxKey struct{}

// memStore is an in-memory stand-in for Postgres. Transactions are
// serialized on txMu, which plays the part of the event row lock, and a
// failed transaction restores the snapshot taken when it began.
type memStore struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	events       map[uuid.UUID]*entity.Event
	reservations map[uuid.UUID]*entity.Reservation
	posts        map[uuid.UUID]*entity.Post
	settings     map[entity.SettingKey]*entity.Setting
	users        map[uuid.UUID]*entity.User
	sessions     map[uuid.UUID]*entity.Session

	// injected failures
	updateSeatsErr error
	reservationErr error
	eventDeleteErr error
}

func newMemStore() *memStore {
	return &memStore{
		events:       make(map[uuid.UUID]*entity.Event),
		reservations: make(map[uuid.UUID]*entity.Reservation),
		posts:        make(map[uuid.UUID]*entity.Post),
		settings:     make(map[entity.SettingKey]*entity.Setting),
		users:        make(map[uuid.UUID]*entity.User),
		sessions:     make(map[uuid.UUID]*entity.Session),
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Tx:          s,
		User:        memUserRepo{s},
		Session:     memSessionRepo{s},
		Event:       memEventRepo{s},
		Reservation: memReservationRepo{s},
		Post:        memPostRepo{s},
		Setting:     memSettingRepo{s},
	}
}

type memSnapshot struct {
	events       map[uuid.UUID]*entity.Event
	reservations map[uuid.UUID]*entity.Reservation
	settings     map[entity.SettingKey]*entity.Setting
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := memSnapshot{
		events:       make(map[uuid.UUID]*entity.Event, len(s.events)),
		reservations: make(map[uuid.UUID]*entity.Reservation, len(s.reservations)),
		settings:     make(map[entity.SettingKey]*entity.Setting, len(s.settings)),
	}
	for id, e := range s.events {
		snap.events[id] = copyEvent(e)
	}
	for id, r := range s.reservations {
		c := *r
		snap.reservations[id] = &c
	}
	for key, setting := range s.settings {
		c := *setting
		snap.settings[key] = &c
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = snap.events
	s.reservations = snap.reservations
	s.settings = snap.settings
}

func (s *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func copyEvent(e *entity.Event) *entity.Event {
	c := *e
	c.Seats = append([]entity.Seat(nil), e.Seats...)
	c.Venues = append([]string(nil), e.Venues...)
	return &c
}

// seedEvent stores an event with the given seats and no reservations.
func (s *memStore) seedEvent(title string, seats ...entity.Seat) *entity.Event {
	now := time.Now()
	event := &entity.Event{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:     title,
		Venues:    []string{"松風庵"},
		EventDate: now.AddDate(0, 1, 0).Format("2006-01-02"),
		Cost:      3000,
		Seats:     seats,
	}
	s.mu.Lock()
	s.events[event.ID] = copyEvent(event)
	s.mu.Unlock()
	return event
}

func (s *memStore) seedReservation(eventID uuid.UUID, email, seatTime string, guests int) *entity.Reservation {
	now := time.Now()
	reservation := &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		EventID:      eventID,
		Name:         "seeded",
		Email:        email,
		Guests:       guests,
		SeatTime:     seatTime,
	}
	s.mu.Lock()
	c := *reservation
	s.reservations[reservation.ID] = &c
	s.mu.Unlock()
	return reservation
}

func (s *memStore) event(id uuid.UUID) *entity.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil
	}
	return copyEvent(e)
}

func (s *memStore) seat(eventID uuid.UUID, seatTime string) entity.Seat {
	event := s.event(eventID)
	if event == nil {
		return entity.Seat{}
	}
	if idx := event.FindSeat(seatTime); idx >= 0 {
		return event.Seats[idx]
	}
	return entity.Seat{}
}

func (s *memStore) reservationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reservations)
}

// ==================== EVENTS ====================

type memEventRepo struct{ s *memStore }

func (r memEventRepo) Create(ctx context.Context, event *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.events[event.ID] = copyEvent(event)
	return nil
}

func (r memEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.s.event(id), nil
}

func (r memEventRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.s.event(id), nil
}

func (r memEventRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Event, error) {
	r.s.mu.RLock()
	events := make([]*entity.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		events = append(events, copyEvent(e))
	}
	r.s.mu.RUnlock()

	sort.Slice(events, func(i, j int) bool { return events[i].EventDate > events[j].EventDate })
	return page(events, limit, offset), nil
}

func (r memEventRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.events)), nil
}

func (r memEventRepo) Update(ctx context.Context, event *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[event.ID]; !ok {
		return errors.New("event not found")
	}
	r.s.events[event.ID] = copyEvent(event)
	return nil
}

func (r memEventRepo) UpdateSeats(ctx context.Context, id uuid.UUID, seats []entity.Seat, participants int) error {
	if r.s.updateSeatsErr != nil {
		return r.s.updateSeatsErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	event, ok := r.s.events[id]
	if !ok {
		return errors.New("event not found")
	}
	event.Seats = append([]entity.Seat(nil), seats...)
	event.Participants = participants
	return nil
}

func (r memEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.s.eventDeleteErr != nil {
		return r.s.eventDeleteErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.events, id)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ==================== RESERVATIONS ====================

type memReservationRepo struct{ s *memStore }

func (r memReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	if r.s.reservationErr != nil {
		return r.s.reservationErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *reservation
	r.s.reservations[reservation.ID] = &c
	return nil
}

func (r memReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	reservation, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	c := *reservation
	return &c, nil
}

func (r memReservationRepo) filter(keep func(*entity.Reservation) bool) []*entity.Reservation {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Reservation
	for _, reservation := range r.s.reservations {
		if keep(reservation) {
			c := *reservation
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r memReservationRepo) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Reservation, error) {
	return r.filter(func(res *entity.Reservation) bool { return res.EventID == eventID }), nil
}

func (r memReservationRepo) FindByEmail(ctx context.Context, email string) ([]*entity.Reservation, error) {
	email = entity.NormalizeEmail(email)
	return r.filter(func(res *entity.Reservation) bool { return entity.NormalizeEmail(res.Email) == email }), nil
}

func (r memReservationRepo) ExistsByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (bool, error) {
	email = entity.NormalizeEmail(email)
	found := r.filter(func(res *entity.Reservation) bool {
		return res.EventID == eventID && entity.NormalizeEmail(res.Email) == email
	})
	return len(found) > 0, nil
}

func (r memReservationRepo) Update(ctx context.Context, reservation *entity.Reservation) error {
	if r.s.reservationErr != nil {
		return r.s.reservationErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *reservation
	r.s.reservations[reservation.ID] = &c
	return nil
}

func (r memReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.reservations, id)
	return nil
}

func (r memReservationRepo) DeleteByEventID(ctx context.Context, eventID uuid.UUID) (int64, error) {
	if r.s.reservationErr != nil {
		return 0, r.s.reservationErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, reservation := range r.s.reservations {
		if reservation.EventID == eventID {
			delete(r.s.reservations, id)
			n++
		}
	}
	return n, nil
}

// ==================== POSTS ====================

type memPostRepo struct{ s *memStore }

func (r memPostRepo) Create(ctx context.Context, post *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *post
	r.s.posts[post.ID] = &c
	return nil
}

func (r memPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	post, ok := r.s.posts[id]
	if !ok || post.DeletedAt != nil {
		return nil, nil
	}
	c := *post
	return &c, nil
}

func (r memPostRepo) matching(filter repository.PostFilter) []*entity.Post {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Post
	for _, post := range r.s.posts {
		if post.DeletedAt != nil {
			continue
		}
		if filter.Kind != "" && post.Kind != filter.Kind {
			continue
		}
		if filter.PublishedOnly && !post.Published {
			continue
		}
		c := *post
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memPostRepo) FindAll(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]*entity.Post, error) {
	return page(r.matching(filter), limit, offset), nil
}

func (r memPostRepo) Count(ctx context.Context, filter repository.PostFilter) (int64, error) {
	return int64(len(r.matching(filter))), nil
}

func (r memPostRepo) Update(ctx context.Context, post *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *post
	r.s.posts[post.ID] = &c
	return nil
}

func (r memPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if post, ok := r.s.posts[id]; ok {
		now := time.Now()
		post.DeletedAt = &now
	}
	return nil
}

// ==================== SETTINGS ====================

type memSettingRepo struct{ s *memStore }

func (r memSettingRepo) Get(ctx context.Context, key entity.SettingKey) (*entity.Setting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	setting, ok := r.s.settings[key]
	if !ok {
		return nil, nil
	}
	c := *setting
	return &c, nil
}

func (r memSettingRepo) GetAll(ctx context.Context) ([]*entity.Setting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Setting, 0, len(r.s.settings))
	for _, setting := range r.s.settings {
		c := *setting
		out = append(out, &c)
	}
	return out, nil
}

func (r memSettingRepo) Set(ctx context.Context, setting *entity.Setting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *setting
	r.s.settings[setting.Key] = &c
	return nil
}

// ==================== USERS & SESSIONS ====================

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *user
	r.s.users[user.ID] = &c
	return nil
}

func (r memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *user
	return &c, nil
}

func (r memUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Username == username {
			c := *user
			return &c, nil
		}
	}
	return nil, nil
}

func (r memUserRepo) CountAll(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

type memSessionRepo struct{ s *memStore }

func (r memSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *session
	r.s.sessions[session.Token] = &c
	return nil
}

func (r memSessionRepo) FindActive(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	session, ok := r.s.sessions[token]
	if !ok || !session.Active(time.Now()) {
		return nil, nil
	}
	c := *session
	return &c, nil
}

func (r memSessionRepo) Revoke(ctx context.Context, token uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.sessions[token]
	if !ok || session.RevokedAt != nil {
		return repository.ErrSessionNotFound
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (r memSessionRepo) PurgeExpired(ctx context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for token, session := range r.s.sessions {
		if session.ExpiresAt.Before(before) {
			delete(r.s.sessions, token)
			n++
		}
	}
	return n, nil
}

// ==================== COLLABORATORS ====================

type recordingPublisher struct {
	mu       sync.Mutex
	messages []notify.ReservationCreated
	err      error
}

func (p *recordingPublisher) PublishReservationCreated(ctx context.Context, msg notify.ReservationCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return p.err
}

func (p *recordingPublisher) sent() []notify.ReservationCreated {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notify.ReservationCreated(nil), p.messages...)
}

type memGateway struct {
	mu       sync.Mutex
	objects  map[string]storage.Object
	urlErr   map[string]error
	putCalls int
}

func newMemGateway() *memGateway {
	return &memGateway{
		objects: make(map[string]storage.Object),
		urlErr:  make(map[string]error),
	}
}

func (g *memGateway) Put(ctx context.Context, r io.Reader, size int64, contentType, path string) (*storage.Object, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.putCalls++
	object := storage.Object{
		Path:        path,
		URL:         "https://cdn.example.com/" + path,
		Size:        size,
		ContentType: contentType,
		Updated:     time.Now(),
	}
	g.objects[path] = object
	return &object, nil
}

func (g *memGateway) Delete(ctx context.Context, path string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.objects[path]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(g.objects, path)
	return nil
}

func (g *memGateway) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []storage.Object
	for path, object := range g.objects {
		if strings.HasPrefix(path, prefix) {
			// listings come back without a URL, the service resolves it
			object.URL = ""
			out = append(out, object)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (g *memGateway) Stat(ctx context.Context, path string) (*storage.Object, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	object, ok := g.objects[path]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return &object, nil
}

func (g *memGateway) DownloadURL(ctx context.Context, path string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.urlErr[path]; err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + path, nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24, CookieName: "session_token"},
		Reservation: utils.ReservationConfig{
			TokenSecret:     "test-secret",
			TokenTTLMinutes: 30,
			PasswordLength:  8,
		},
		Storage: utils.StorageConfig{MaxUploadMB: 1},
	}
}

type testEnv struct {
	store     *memStore
	gateway   *memGateway
	publisher *recordingPublisher
	service   *Service
}

func newTestEnv() *testEnv {
	store := newMemStore()
	gateway := newMemGateway()
	publisher := &recordingPublisher{}
	return &testEnv{
		store:     store,
		gateway:   gateway,
		publisher: publisher,
		service:   NewService(store.repository(), gateway, publisher, testConfig(), zap.NewNop()),
	}
}
