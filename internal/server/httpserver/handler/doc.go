// Package handler provides HTTP request handlers for the admin endpoint.
package handler
