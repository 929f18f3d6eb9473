// Package harness runs theme conformance scenarios against the bridge.
//
// A scenario seeds a fresh in-memory content store from a YAML fixture,
// replays the data-access calls a theme makes, and checks what came back
// together with the facade's query log.
//
// # Scenario Format
//
//	name: front_page
//	description: "Front page reads the latest posts"
//	fixture: ../fixtures/site.yaml   # relative to the scenario file
//	request_id: req-front-page       # optional, fixes the facade request ID
//	env:                             # optional, same keys as the CUE config
//	  base_url: https://example.com
//	  posts_per_page: 2
//	steps:
//	  - call: get_results
//	    query: "SELECT ID, post_title FROM wp_posts WHERE post_type = 'post'"
//	    shape: ARRAY_A
//	    expect:
//	      ids: [3, 2, 1]
//	  - call: loop
//	    args: "posts_per_page=2&paged=2"
//	    expect:
//	      found_posts: 3
//	      flags: [home]
//	assertions:
//	  - type: log_count
//	    count: 1
//
// # Calls
//
//   - get_results, get_row, get_var, get_col: facade reads; params fill
//     %d/%f/%s placeholders through bridge.Prepare
//   - query, insert, update, delete: facade writes, always false
//   - option: get_option for the named option
//   - loop: WP_Query arguments as a query string, iterated to the end
//
// # Assertion Types
//
//   - log_count: number of log entries, optionally for one method
//   - log_order: methods appear in the log in the given order
//   - log_contains: an entry with the method whose query contains text
//
// # Deterministic Testing
//
// Every scenario runs against its own in-memory store with a fixed request
// ID and a fresh log sequence, so traces are stable for golden comparison.
package harness
