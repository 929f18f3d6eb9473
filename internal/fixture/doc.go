// Package fixture loads YAML content fixtures into the content store.
//
// A fixture lists nodes, accounts, taxonomy terms, node/term tags and
// configuration blobs:
//
//	name: blog
//	nodes:
//	  - nid: 1
//	    type: article
//	    title: Hello World
//	    status: 1
//	    created: 1700000000
//	    path: hello-world
//	    fields:
//	      body:
//	        und:
//	          - value: "<p>Hi</p>"
//	accounts:
//	  - uid: 1
//	    name: admin
//	    roles: [administrator]
//	config:
//	  system.core:
//	    site_name: Example
//
// Unknown keys are rejected so typos surface at load time.
package fixture
