package async

// ErrAble 把阻塞调用挪到后台，错误经信道交回
func ErrAble(fn func() error) <-chan error {
	ch := make(chan error)
	go func() {
		ch <- fn()
		close(ch)
	}()
	return ch
}
