// Package domain defines the identity entities, the storage and service
// contracts and the sentinel errors shared across the app. It holds plain
// types and interfaces only; behaviour lives in crypto, signing and services.
package domain
