// Package staff models the people acting on production orders: their roles
// and team membership. The core only reads staff data; creating and managing
// users lives outside this module. What matters here is the ownership rule:
// operator- and workshop-class users may only act on orders assigned to them.
package staff
