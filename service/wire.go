package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	wire.Struct(new(FollowService), "*"),
	wire.Bind(new(IFollowService), new(*FollowService)),

	wire.Struct(new(CounterService), "*"),
	wire.Bind(new(ICounterService), new(*CounterService)),

	wire.Struct(new(SchedulerService), "*"),
	wire.Bind(new(ISchedulerService), new(*SchedulerService)),

	wire.Struct(new(PostService), "*"),
	wire.Bind(new(IPostService), new(*PostService)),

	wire.Struct(new(SuggestionService), "*"),
	wire.Bind(new(ISuggestionService), new(*SuggestionService)),

	wire.Struct(new(FeedService), "*"),
	wire.Bind(new(IFeedService), new(*FeedService)),

	wire.Struct(new(AnalyticsService), "*"),
	wire.Bind(new(IAnalyticsService), new(*AnalyticsService)),

	wire.Struct(new(ReconcileService), "*"),
	wire.Bind(new(IReconcileService), new(*ReconcileService)),

	wire.Struct(new(SeedService), "*"),
	wire.Bind(new(ISeedService), new(*SeedService)),

	NewCommentPolicy,
	NewScorer,
)
