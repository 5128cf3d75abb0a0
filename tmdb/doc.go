// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tmdb is the catalog-building collaborator: it turns the host's
filter specification (genres, mood, runtime bucket, release-year bucket,
minimum rating, certifications, content type) plus the selected streaming
services into an ordered list of candidate titles via the TMDB discover API.

Provider availability is resolved per title against the selected service
set; titles watchable on none of them are dropped. An empty catalog is a
valid outcome the session core must handle, not an error.
*/
package tmdb
