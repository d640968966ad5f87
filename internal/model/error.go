package model

import "errors"

var ErrorMissingFields = errors.New("missing required fields")
var ErrorInvalidCoordinates = errors.New("latitude or longitude out of range")
var ErrorDuplicateEmail = errors.New("email address already registered")
var ErrorDuplicateISBN = errors.New("book with this ISBN already exists")
var ErrorInvalidCredentials = errors.New("invalid email or password")
var ErrorInvalidToken = errors.New("invalid token")
var ErrorNoPendingSetup = errors.New("no MFA setup in progress")
var ErrorNoPendingLogin = errors.New("no login awaiting MFA")
var ErrorUnauthenticated = errors.New("not authenticated")
var ErrorUserNotFound = errors.New("user not found")
var ErrorBookNotFound = errors.New("book not found for the given ISBN")
var ErrorSessionNotFound = errors.New("session not found")
var ErrorCatalogUnavailable = errors.New("failed to fetch book data from catalog")
