package commands

import (
	"context"
	"log/slog"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
)

// networkBinding holds whatever the resolver managed to bind. Any field
// may be nil; both hubs must be present for the order to count as assigned.
type networkBinding struct {
	originHub      *network.Hub
	destinationHub *network.Hub
	vehicle        *network.Vehicle
	agent          *network.Agent
}

func (b networkBinding) complete() bool {
	return b.originHub != nil && b.destinationHub != nil
}

// apply writes the binding onto the aggregate. A binding without both hubs
// leaves the order untouched and reports false.
func (b networkBinding) apply(agg *order.Order) (bool, error) {
	if !b.complete() {
		return false, nil
	}
	var vehicleID, agentID *kernel.UUID
	if b.vehicle != nil {
		id := b.vehicle.ID()
		vehicleID = &id
	}
	if b.agent != nil {
		id := b.agent.ID()
		agentID = &id
	}
	if err := agg.BindNetwork(b.originHub.ID(), b.destinationHub.ID(), vehicleID, agentID); err != nil {
		return false, err
	}
	return true, nil
}

// networkBinder resolves hubs, a vehicle and a pickup agent on a
// best-effort basis. Failures are logged and leave the corresponding
// field nil; resolution never surfaces an error to the workflow.
type networkBinder struct {
	resolver services.AssignmentResolver
	logger   *slog.Logger
}

func (b networkBinder) resolve(
	ctx context.Context,
	repo ports.NetworkRepository,
	pickup, drop kernel.Address,
	now time.Time,
) networkBinding {
	var binding networkBinding

	binding.originHub = b.resolveHub(ctx, repo, pickup.State(), pickup.City(), now)
	binding.destinationHub = b.resolveHub(ctx, repo, drop.State(), drop.City(), now)
	if !binding.complete() {
		return binding
	}

	vehicles, err := repo.GetAvailableVehicles(ctx)
	if err != nil {
		b.logger.Warn("vehicle lookup failed", "error", err)
	} else {
		binding.vehicle = b.resolver.SelectVehicle(vehicles, pickup.State(), drop.State())
	}

	agents, err := repo.GetAvailableAgentsByHub(ctx, binding.originHub.ID())
	if err != nil {
		b.logger.Warn("agent lookup failed",
			"hubId", binding.originHub.ID().String(), "error", err)
		return binding
	}
	agent := b.resolver.SelectAgent(agents)
	if agent == nil {
		return binding
	}
	if err := repo.AdjustAgentLoad(ctx, agent.ID(), 1); err != nil {
		b.logger.Warn("pickup agent load adjustment failed",
			"agentId", agent.ID().String(), "error", err)
		return binding
	}
	binding.agent = agent

	return binding
}

// resolveHub finds a hub covering the city and state, minting and
// persisting a fallback hub when the state has no coverage.
func (b networkBinder) resolveHub(
	ctx context.Context,
	repo ports.NetworkRepository,
	state, city string,
	now time.Time,
) *network.Hub {
	hubs, err := repo.GetHubsByState(ctx, state)
	if err != nil {
		b.logger.Warn("hub lookup failed", "state", state, "error", err)
		return nil
	}
	if hub := b.resolver.ResolveHub(hubs, city, state); hub != nil {
		return hub
	}

	hub, err := b.resolver.NewFallbackHub(state, city, now)
	if err != nil {
		b.logger.Warn("fallback hub creation failed", "state", state, "error", err)
		return nil
	}
	if err := repo.AddHub(ctx, hub); err != nil {
		b.logger.Warn("fallback hub persistence failed", "state", state, "error", err)
		return nil
	}
	return hub
}
