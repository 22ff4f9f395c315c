package model

// StorageResult - результат чтения из клиентского хранилища.
// Found=false и Err=nil означает отсутствие ключа.
type StorageResult[T any] struct {
	Value T
	Found bool
	Err   error
}

// Ok - значение найдено и прочитано без ошибок
func (r StorageResult[T]) Ok() bool {
	return r.Err == nil && r.Found
}

// OrElse - значение либо def, если ключа нет или хранилище недоступно
func (r StorageResult[T]) OrElse(def T) T {
	if !r.Ok() {
		return def
	}
	return r.Value
}

func Found[T any](v T) StorageResult[T] {
	return StorageResult[T]{Value: v, Found: true}
}

func NotFound[T any]() StorageResult[T] {
	return StorageResult[T]{}
}

func Failed[T any](err error) StorageResult[T] {
	return StorageResult[T]{Err: err}
}
