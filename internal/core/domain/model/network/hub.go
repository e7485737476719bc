package network

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// ErrHubIsNotConstructed is returned when a Hub was not created through
// NewHub or RestoreHub.
var ErrHubIsNotConstructed = errors.New("Hub must be created via NewHub or RestoreHub")

// DefaultHubMaxOrders is the capacity assigned to hubs created without an
// explicit limit, including fallback hubs minted by the assignment resolver.
const DefaultHubMaxOrders = 1000

// Hub is a sorting facility in the delivery network. It admits orders up to
// its capacity and serves a set of pincodes within one state.
type Hub struct {
	id           kernel.UUID
	code         string
	state        string
	city         string
	area         Area
	maxOrders    int
	currentLoad  int
	serviceAreas []string
	active       bool
	createdAt    time.Time

	isConstructed bool
}

// NewHub creates an active Hub with zero load. A maxOrders of 0 falls back
// to DefaultHubMaxOrders.
func NewHub(id kernel.UUID, code, state, city string, area Area, maxOrders int, serviceAreas []string, createdAt time.Time) (*Hub, error) {
	if maxOrders == 0 {
		maxOrders = DefaultHubMaxOrders
	}

	h := &Hub{
		active:        true,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		h.setID(id),
		h.setCode(code),
		h.setRegion(state, city, area),
		h.setCapacity(maxOrders),
	); err != nil {
		return nil, err
	}

	h.serviceAreas = slices.Clone(serviceAreas)
	return h, nil
}

// RestoreHub reconstructs a Hub from persistent storage.
func RestoreHub(id kernel.UUID, code, state, city string, area Area, maxOrders, currentLoad int, serviceAreas []string, active bool, createdAt time.Time) (*Hub, error) {
	h, err := NewHub(id, code, state, city, area, maxOrders, serviceAreas, createdAt)
	if err != nil {
		return nil, err
	}
	if currentLoad < 0 || currentLoad > h.maxOrders {
		return nil, errs.NewValueIsOutOfRangeError("currentLoad", currentLoad, 0, h.maxOrders)
	}
	h.currentLoad = currentLoad
	h.active = active
	return h, nil
}

// Validate ensures the Hub was properly constructed.
func (h *Hub) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHubIsNotConstructed
	}
	return nil
}

func (h *Hub) ID() kernel.UUID   { return h.id }
func (h *Hub) Code() string      { return h.code }
func (h *Hub) State() string     { return h.state }
func (h *Hub) City() string      { return h.city }
func (h *Hub) Area() Area        { return h.area }
func (h *Hub) MaxOrders() int    { return h.maxOrders }
func (h *Hub) CurrentLoad() int  { return h.currentLoad }
func (h *Hub) Active() bool      { return h.active }
func (h *Hub) CreatedAt() time.Time { return h.createdAt }

// ServiceAreas returns a copy of the pincodes this hub serves.
func (h *Hub) ServiceAreas() []string {
	return slices.Clone(h.serviceAreas)
}

// Headroom returns the number of additional orders the hub can admit.
func (h *Hub) Headroom() int {
	return h.maxOrders - h.currentLoad
}

// AdmitOrders takes n orders into the hub, all or nothing.
func (h *Hub) AdmitOrders(n int) error {
	if n <= 0 {
		return errs.NewValueIsOutOfRangeError("count", n, 1, h.Headroom())
	}
	if n > h.Headroom() {
		return capacityExceeded(fmt.Sprintf("hub %s", h.code), h.Headroom(), n)
	}
	h.currentLoad += n
	return nil
}

// ReleaseOrders returns n orders worth of capacity to the hub.
// The load never goes below zero.
func (h *Hub) ReleaseOrders(n int) {
	h.currentLoad -= n
	if h.currentLoad < 0 {
		h.currentLoad = 0
	}
}

// Serves reports whether the hub covers the given pincode.
func (h *Hub) Serves(pincode string) bool {
	return slices.Contains(h.serviceAreas, pincode)
}

// Deactivate removes the hub from assignment without deleting it.
func (h *Hub) Deactivate() {
	h.active = false
}

func (h *Hub) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *Hub) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("hubCode")
	}
	h.code = code
	return nil
}

func (h *Hub) setRegion(state, city string, area Area) error {
	if state == "" {
		return errs.NewValueIsRequiredError("state")
	}
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	if err := area.Validate(); err != nil {
		return err
	}
	h.state = state
	h.city = city
	h.area = area
	return nil
}

func (h *Hub) setCapacity(maxOrders int) error {
	if maxOrders < 0 {
		return errs.NewValueIsOutOfRangeError("maxOrders", maxOrders, 0, DefaultHubMaxOrders)
	}
	h.maxOrders = maxOrders
	return nil
}
