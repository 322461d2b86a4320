// Package osm downloads OpenStreetMap street data and turns it into a
// routable core.Graph.
//
// What:
//
//   - Client.Geocode resolves a place string ("Banyumas, Central Java, Indonesia")
//     to an OSM area through Nominatim.
//   - Client.FetchPlace downloads every way of a NetworkType inside that area
//     through the Overpass API; Client.Fetch does this for several places and merges.
//   - Build converts the merged Document into a Network: one vertex per used node
//     (lat/lon metadata), one edge per consecutive node pair weighted by length
//     in metres, one-way tags honoured for drive and bike networks.
//   - Network.NearestNode snaps an arbitrary coordinate to the closest node.
//
// HTTP goes through gocolly/colly with a per-request timeout, retries and
// context cancellation.
//
// Errors:
//
//   - ErrUnknownNetworkType, ErrPlaceNotFound, ErrRequest, ErrBadResponse,
//     ErrEmptyNetwork, ErrNodeNotFound.
package osm
