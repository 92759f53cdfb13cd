package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/league --output domain/league --outpkg leaguemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RankingRepository --dir ../domain/player --output domain/player --outpkg playermock --filename ranking_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/draft --output domain/draft --outpkg draftmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name PickRepository --dir ../domain/draft --output domain/draft --outpkg draftmock --filename pick_repository_mock.go
