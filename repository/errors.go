package repository

import "errors"

var errNoRows = errors.New("repository: no rows affected")
