package services_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHub(t *testing.T, code, state, city string) *network.Hub {
	t.Helper()
	h, err := network.NewHub(
		kernel.NewUUID(), code, state, city, network.AreaSouth, 100, nil, time.Now())
	require.NoError(t, err)
	return h
}

func makeAgent(t *testing.T, code string, currentOrders int) *network.Agent {
	t.Helper()
	a, err := network.RestoreAgent(
		kernel.NewUUID(), code, "Agent "+code, "+91981", kernel.NewUUID(),
		network.AreaSouth, network.AgentAvailable, 10, currentOrders, true, time.Now())
	require.NoError(t, err)
	return a
}

func makeVehicle(t *testing.T, code string, states ...string) *network.Vehicle {
	t.Helper()
	v, err := network.NewVehicle(
		kernel.NewUUID(), code, network.VehicleTruck, "KA01"+code,
		5000, 30, 100, states, time.Now())
	require.NoError(t, err)
	return v
}

func TestAssignmentResolver_ResolveHub(t *testing.T) {
	resolver := services.NewAssignmentResolver()

	t.Run("prefers_exact_city_match", func(t *testing.T) {
		// Given
		stateHub := makeHub(t, "HUB-KA-MYS", "Karnataka", "Mysuru")
		cityHub := makeHub(t, "HUB-KA-BLR", "Karnataka", "Bengaluru")

		// When
		resolved := resolver.ResolveHub([]*network.Hub{stateHub, cityHub}, "Bengaluru", "Karnataka")

		// Then
		require.NotNil(t, resolved)
		assert.Equal(t, "HUB-KA-BLR", resolved.Code())
	})

	t.Run("falls_back_to_any_hub_in_state", func(t *testing.T) {
		stateHub := makeHub(t, "HUB-KA-MYS", "Karnataka", "Mysuru")
		resolved := resolver.ResolveHub([]*network.Hub{stateHub}, "Bengaluru", "Karnataka")
		require.NotNil(t, resolved)
		assert.Equal(t, "HUB-KA-MYS", resolved.Code())
	})

	t.Run("skips_inactive_hubs", func(t *testing.T) {
		h := makeHub(t, "HUB-KA-BLR", "Karnataka", "Bengaluru")
		h.Deactivate()
		assert.Nil(t, resolver.ResolveHub([]*network.Hub{h}, "Bengaluru", "Karnataka"))
	})

	t.Run("no_candidates_returns_nil", func(t *testing.T) {
		h := makeHub(t, "HUB-MH-BOM", "Maharashtra", "Mumbai")
		assert.Nil(t, resolver.ResolveHub([]*network.Hub{h}, "Bengaluru", "Karnataka"))
	})
}

func TestAssignmentResolver_NewFallbackHub(t *testing.T) {
	resolver := services.NewAssignmentResolver()

	// When
	hub, err := resolver.NewFallbackHub("Kerala", "Kochi", time.Now())

	// Then
	require.NoError(t, err)
	assert.Equal(t, "Kerala", hub.State())
	assert.Equal(t, network.AreaNorth, hub.Area())
	assert.Equal(t, []string{"000000"}, hub.ServiceAreas())
	assert.True(t, hub.Active())
	assert.Equal(t, network.DefaultHubMaxOrders, hub.MaxOrders())
}

func TestAssignmentResolver_SelectAgent(t *testing.T) {
	resolver := services.NewAssignmentResolver()

	t.Run("picks_the_least_loaded", func(t *testing.T) {
		// Given
		busy := makeAgent(t, "AGT-1", 7)
		idle := makeAgent(t, "AGT-2", 1)
		moderate := makeAgent(t, "AGT-3", 4)

		// When
		selected := resolver.SelectAgent([]*network.Agent{busy, idle, moderate})

		// Then
		require.NotNil(t, selected)
		assert.Equal(t, "AGT-2", selected.Code())
	})

	t.Run("tie_goes_to_the_earlier_candidate", func(t *testing.T) {
		first := makeAgent(t, "AGT-1", 2)
		second := makeAgent(t, "AGT-2", 2)
		selected := resolver.SelectAgent([]*network.Agent{first, second})
		require.NotNil(t, selected)
		assert.Equal(t, "AGT-1", selected.Code())
	})

	t.Run("skips_unavailable_agents", func(t *testing.T) {
		offDuty := makeAgent(t, "AGT-1", 0)
		require.NoError(t, offDuty.SetStatus(network.AgentOffDuty))
		assert.Nil(t, resolver.SelectAgent([]*network.Agent{offDuty}))
	})

	t.Run("empty_candidate_set_returns_nil", func(t *testing.T) {
		assert.Nil(t, resolver.SelectAgent(nil))
	})
}

func TestAssignmentResolver_SelectVehicle(t *testing.T) {
	resolver := services.NewAssignmentResolver()

	t.Run("picks_a_vehicle_serving_either_endpoint", func(t *testing.T) {
		// Given
		wrongRoute := makeVehicle(t, "VEH-1", "Kerala")
		rightRoute := makeVehicle(t, "VEH-2", "Maharashtra")

		// When
		selected := resolver.SelectVehicle(
			[]*network.Vehicle{wrongRoute, rightRoute}, "Karnataka", "Maharashtra")

		// Then
		require.NotNil(t, selected)
		assert.Equal(t, "VEH-2", selected.Code())
	})

	t.Run("skips_vehicles_in_maintenance", func(t *testing.T) {
		v := makeVehicle(t, "VEH-1", "Karnataka")
		require.NoError(t, v.SetStatus(network.VehicleMaintenance))
		assert.Nil(t, resolver.SelectVehicle([]*network.Vehicle{v}, "Karnataka", "Maharashtra"))
	})

	t.Run("no_coverage_returns_nil", func(t *testing.T) {
		v := makeVehicle(t, "VEH-1", "Kerala")
		assert.Nil(t, resolver.SelectVehicle([]*network.Vehicle{v}, "Karnataka", "Maharashtra"))
	})
}
