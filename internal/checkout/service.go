package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/calmate/storefront/internal/cart"
	"github.com/calmate/storefront/internal/pricing"
	"github.com/calmate/storefront/internal/profile"
	"github.com/calmate/storefront/pkg/enums"
	pkgerrors "github.com/calmate/storefront/pkg/errors"
	"github.com/calmate/storefront/pkg/logger"
	"github.com/calmate/storefront/pkg/metrics"
	"github.com/calmate/storefront/pkg/orders"
	"github.com/calmate/storefront/pkg/types"
)

// Phase is the submission state of one session's checkout.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
	PhaseSubmitted  Phase = "submitted"
	PhaseFailed     Phase = "failed"
)

const defaultSubmitTimeout = 30 * time.Second

type orderCreator interface {
	CreateOrder(ctx context.Context, accessToken string, input orders.CreateOrderRequest) (string, error)
}

type profileStore interface {
	Save(ctx context.Context, userID string, p profile.Profile) error
	Load(ctx context.Context, userID string) (*profile.Profile, error)
}

type cartAccessor interface {
	Get(sessionID string) *cart.Store
}

// SubmitInput is everything one submission needs: the session whose cart is
// being bought, the authenticated buyer, and the posted form.
type SubmitInput struct {
	SessionID   string
	UserID      string
	AccessToken string
	Form        Submission
}

// Confirmation is returned for an accepted order.
type Confirmation struct {
	OrderID      string        `json:"order_id"`
	RedirectPath string        `json:"redirect_path"`
	Quote        pricing.Quote `json:"quote"`
}

// Service coordinates the checkout form: prefilling remembered data, pricing
// the cart, and driving the order submission.
type Service interface {
	Prefill(ctx context.Context, userID string) (Submission, error)
	Submit(ctx context.Context, input SubmitInput) (*Confirmation, error)
	Phase(sessionID string) Phase
}

type service struct {
	carts    cartAccessor
	orders   orderCreator
	profiles profileStore
	policy   pricing.Policy
	logg     *logger.Logger
	stats    *metrics.CheckoutMetrics
	timeout  time.Duration

	mu       sync.Mutex
	phases   map[string]Phase
	inFlight map[string]struct{}
}

// Option tweaks the service.
type Option func(*service)

// WithSubmitTimeout bounds the order service call.
func WithSubmitTimeout(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithMetrics attaches submission counters.
func WithMetrics(stats *metrics.CheckoutMetrics) Option {
	return func(s *service) {
		s.stats = stats
	}
}

// NewService builds the checkout coordinator.
func NewService(carts cartAccessor, orderClient orderCreator, profiles profileStore, policy pricing.Policy, logg *logger.Logger, opts ...Option) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart accessor required")
	}
	if orderClient == nil {
		return nil, fmt.Errorf("order client required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &service{
		carts:    carts,
		orders:   orderClient,
		profiles: profiles,
		policy:   policy,
		logg:     logg,
		timeout:  defaultSubmitTimeout,
		phases:   map[string]Phase{},
		inFlight: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// NewSubmission returns a form with the storefront's defaults selected.
func NewSubmission() Submission {
	return Submission{
		MetodoEnvio:   enums.ShippingMethodDelivery,
		TipoDocumento: enums.DocumentTypeBoleta,
		MetodoPago:    enums.PaymentMethodCashOnDelivery,
	}
}

// Prefill returns a fresh form seeded from the buyer's remembered profile,
// or the defaults when nothing is remembered.
func (s *service) Prefill(ctx context.Context, userID string) (Submission, error) {
	form := NewSubmission()
	if userID == "" {
		return form, pkgerrors.New(pkgerrors.CodeUnauthorized, "Debes iniciar sesión")
	}
	remembered, err := s.profiles.Load(ctx, userID)
	if err != nil {
		return form, err
	}
	if remembered == nil {
		return form, nil
	}
	form.Email = remembered.Email
	form.Nombre = remembered.Nombre
	form.Apellidos = remembered.Apellidos
	form.Calle = remembered.Calle
	form.Referencia = remembered.Referencia
	form.Region = remembered.Region
	form.Comuna = remembered.Comuna
	form.CodigoPostal = remembered.CodigoPostal
	form.Telefono = remembered.Telefono
	form.Rut = remembered.Rut
	form.GuardarInfo = true
	return form, nil
}

// Phase reports the submission state of a session.
func (s *service) Phase(sessionID string) Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if phase, ok := s.phases[sessionID]; ok {
		return phase
	}
	return PhaseIdle
}

// Submit validates the form, prices the cart, and places the order. The cart
// is cleared only after the order service accepts; any failure leaves cart
// and form untouched so the buyer can retry. A second Submit while one is in
// flight for the same session is refused without side effects.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*Confirmation, error) {
	if input.UserID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Debes iniciar sesión")
	}

	if !s.begin(input.SessionID) {
		s.stats.IncSubmission("in_flight")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Ya hay un pedido en curso")
	}
	defer s.end(input.SessionID)

	store := s.carts.Get(input.SessionID)
	items := store.Items()

	if fields := Validate(input.Form, len(items)); fields != nil {
		s.finish(input.SessionID, PhaseIdle)
		s.stats.IncSubmission("invalid")
		s.logg.Warn(s.logg.WithField(ctx, "validation", fields.Combined().Error()), "checkout form rejected")
		return nil, fields.Err()
	}

	quote := pricing.Compute(items, input.Form.MetodoEnvio, s.policy)

	request := orders.CreateOrderRequest{
		UserID: input.UserID,
		Total:  quote.Total,
		ShippingAddress: types.ShippingAddress{
			FullName:   input.Form.FullName(),
			Address:    input.Form.Calle,
			Region:     input.Form.Region,
			Comuna:     input.Form.Comuna,
			Referencia: input.Form.Referencia,
			Telefono:   input.Form.Telefono,
			Email:      input.Form.Email,
		},
		Items: make([]orders.LineItem, 0, len(items)),
	}
	for _, item := range items {
		request.Items = append(request.Items, orders.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	orderID, err := s.orders.CreateOrder(callCtx, input.AccessToken, request)
	s.stats.ObserveSubmitDuration(time.Since(started))
	if err != nil {
		s.finish(input.SessionID, PhaseFailed)
		s.stats.IncSubmission(outcomeFor(err))
		s.logg.Error(ctx, "order submission failed", err)
		return nil, err
	}

	store.Clear()
	s.finish(input.SessionID, PhaseSubmitted)
	s.stats.IncSubmission("success")

	s.rememberProfile(ctx, input)
	if input.Form.Novedades {
		s.logg.Info(s.logg.WithField(ctx, "email", input.Form.Email), "newsletter opt-in recorded")
	}

	return &Confirmation{
		OrderID:      orderID,
		RedirectPath: "/orden-confirmada?id=" + orderID,
		Quote:        quote,
	}, nil
}

// rememberProfile saves the contact data when the buyer asked for it. A
// storage failure must not undo an accepted order, so it only logs.
func (s *service) rememberProfile(ctx context.Context, input SubmitInput) {
	if !input.Form.GuardarInfo {
		return
	}
	saved := profile.Profile{
		Email:        input.Form.Email,
		Nombre:       input.Form.Nombre,
		Apellidos:    input.Form.Apellidos,
		Calle:        input.Form.Calle,
		Referencia:   input.Form.Referencia,
		Region:       input.Form.Region,
		Comuna:       input.Form.Comuna,
		CodigoPostal: input.Form.CodigoPostal,
		Telefono:     input.Form.Telefono,
		Rut:          input.Form.Rut,
	}
	if err := s.profiles.Save(ctx, input.UserID, saved); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "could not remember checkout profile")
	}
}

// begin marks the session as submitting unless a submission is already in
// flight.
func (s *service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	s.phases[sessionID] = PhaseSubmitting
	return true
}

func (s *service) end(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}

func (s *service) finish(sessionID string, phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phases[sessionID] = phase
}

func outcomeFor(err error) string {
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeRejected {
		return "rejected"
	}
	return "error"
}
