// Package domain contains the core entities shared by the operational
// commands (currently users and their account types). These types are free of
// infrastructure concerns so they can be used across storage, services and
// the API layer.
package domain
