// Package fleet models the simulated entities: shipment orders, depots with
// their dock queues, and the vehicles that carry orders between them.
//
// Each tick the engine calls Depot.Action on every depot and then
// Vehicle.Action on every vehicle. A vehicle that reaches its target depot
// pauses and joins the depot's entry queue; the depot admits up to Docks()
// vehicles per tick into its release queue and, on the following tick,
// calls Vehicle.LoadingComplete on each of them. Which order a vehicle
// pursues next is decided by its Router.
package fleet
