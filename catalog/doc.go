// Package catalog is the client for the remote geospatial metadata catalog
// backing the bridge ("the Catalog Service"). It speaks the service's
// native parameter vocabulary (concept ids, short-name/version pairs,
// temporal ranges, tag keys, paging cursors) and returns native collection
// and granule records for the assembler to reshape into STAC documents.
//
// The client is stateless: every call is a fresh HTTP round trip and no
// results are cached between requests.
package catalog
