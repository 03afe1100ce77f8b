// Package securestore persists small opaque items (sealed session tokens and
// the salt they are sealed with) in the local SQLite database.
//
// The repository never sees plaintext secrets: encryption is done by the
// credentials package before Set and after Get.
package securestore
