// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime delivers store change events to session subscribers over
websockets.

Hub is the fan-out: one subscriber set per session, pruned on write failure.
Relay adapts the hub to the store's Notifier interface and routes swipe
events through a per-session Debouncer so match recomputation runs at most
once per quiet window instead of once per insert.

Clients treat a closed socket as "subscription lost" and reconnect; there is
no silent staleness state.
*/
package realtime
