package repository

import "errors"

var ErrNotFound = errors.New("not found")

// 一意制約違反（注文コードの衝突など）
var ErrDuplicate = errors.New("duplicate")
