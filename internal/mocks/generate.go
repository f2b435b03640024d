package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Reader --dir ../domain/event --output domain/event --outpkg eventmock --filename reader_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Reader --dir ../domain/team --output domain/team --outpkg teammock --filename reader_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ResultSink --dir ../domain/team --output domain/team --outpkg teammock --filename result_sink_mock.go
