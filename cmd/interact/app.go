/*
 * @Description: 命令行应用的依赖组装
 * @Author: 安知鱼
 * @Date: 2025-06-15 11:30:00
 * @LastEditTime: 2026-10-17 14:22:51
 * @LastEditors: 安知鱼
 */
package interact

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/anzhiyu-c/anheyu-interact/internal/infra/remote"
	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-interact/internal/pkg/event"
	"github.com/anzhiyu-c/anheyu-interact/pkg/config"
	"github.com/anzhiyu-c/anheyu-interact/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-interact/pkg/idgen"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/content"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/interaction"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/notification"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/scrollspy"
	"github.com/anzhiyu-c/anheyu-interact/pkg/service/utility"
)

// AppOptions 构建 App 所需的命令行参数
type AppOptions struct {
	ConfigPath string
	Kind       model.ContentKind
	Token      string
	Out        io.Writer
	// BaseURL 非空时覆盖配置中的远程地址
	BaseURL string
}

// App 持有一次命令执行所需的全部服务
type App struct {
	cfg      *config.Config
	bus      *event.EventBus
	notifier notification.Service
	session  *auth.Session
	cache    utility.CacheService
	loader   *content.Loader
	client   *remote.Client
	engine   *interaction.Engine
	out      *syncWriter
}

// syncWriter 让事件总线的 worker 和命令本身可以安全地写同一个输出
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *syncWriter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(s, format, args...)
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入
func NewApp(opts AppOptions) (*App, func(), error) {
	var cleanupFuncs []func()
	cleanup := func() {
		for i := len(cleanupFuncs) - 1; i >= 0; i-- {
			cleanupFuncs[i]()
		}
	}

	// --- Phase 1: 加载配置 ---
	cfg, err := config.NewConfig(opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.Set(config.KeyRemoteBaseURL, opts.BaseURL)
	}
	if opts.Kind == "" {
		opts.Kind = model.KindBlog
	}

	if err := idgen.InitSqidsEncoderWithSeed(cfg.GetString(config.KeySqidsSeed)); err != nil {
		return nil, nil, fmt.Errorf("初始化 ID 编码器失败: %w", err)
	}

	out := &syncWriter{w: opts.Out}

	// --- Phase 2: 事件总线与用户提示 ---
	bus := event.NewEventBus()
	cleanupFuncs = append(cleanupFuncs, bus.Shutdown)
	subscribeNotices(bus, out)
	notifier := notification.NewNotificationService(bus)

	// --- Phase 3: 用户身份 ---
	token := opts.Token
	if token == "" {
		token = cfg.GetString(config.KeyRemoteToken)
	}
	session, err := auth.NewSessionFromToken(token, []byte(cfg.GetString(config.KeyJWTSecret)), notifier)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("解析登录凭证失败: %w", err)
	}

	// --- Phase 4: 缓存（Redis 不可用时降级到内存） ---
	redisClient := utility.NewRedisClient(context.Background(), utility.RedisOptions{
		Addr:     cfg.GetString(config.KeyRedisAddr),
		Password: cfg.GetString(config.KeyRedisPassword),
		DB:       cfg.GetInt(config.KeyRedisDB),
	})
	if redisClient != nil {
		cleanupFuncs = append(cleanupFuncs, func() { closeRedis(redisClient) })
	}
	cache := utility.NewCacheServiceWithFallback(redisClient)
	if stopper, ok := cache.(interface{ Stop() }); ok {
		cleanupFuncs = append(cleanupFuncs, stopper.Stop)
	}
	log.Printf("[App] 缓存类型: %s", utility.GetCacheServiceType(cache))

	// --- Phase 5: 远程接口与内容加载 ---
	client, err := remote.New(remote.Options{
		BaseURL:     cfg.GetString(config.KeyRemoteBaseURL),
		TokenSource: session.Token,
		Timeout:     time.Duration(cfg.GetInt(config.KeyRemoteTimeoutSeconds)) * time.Second,
		RateLimit:   cfg.GetFloat64(config.KeyRemoteRateLimit),
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("创建远程客户端失败: %w", err)
	}
	loader := content.NewLoader(client, cache, time.Duration(cfg.GetInt(config.KeyCacheTTL))*time.Second)

	// --- Phase 6: 交互引擎 ---
	policy, err := interaction.ParseRefreshPolicy(cfg.GetString(config.KeyRefreshPolicy))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	engine := interaction.NewEngine(opts.Kind, client, session, notifier, loader, interaction.Options{
		MaxCommentLength: cfg.GetInt(config.KeyMaxCommentLength),
		RefreshPolicy:    policy,
	})

	app := &App{
		cfg:      cfg,
		bus:      bus,
		notifier: notifier,
		session:  session,
		cache:    cache,
		loader:   loader,
		client:   client,
		engine:   engine,
		out:      out,
	}
	return app, cleanup, nil
}

// subscribeNotices 把提示事件打印到命令行输出
func subscribeNotices(bus *event.EventBus, out *syncWriter) {
	labels := map[event.Topic]string{
		event.NoticeSuccess: "✅",
		event.NoticeWarning: "⚠️ ",
		event.NoticeError:   "❌",
	}
	for topic, label := range labels {
		label := label
		bus.Subscribe(topic, func(payload interface{}) {
			if n, ok := payload.(model.Notice); ok {
				out.Printf("%s %s\n", label, n.Message)
			}
		})
	}
	bus.Subscribe(event.LoginRequired, func(payload interface{}) {
		out.Printf("🔒 %v，请使用 --token 传入登录凭证\n", payload)
	})
}

func closeRedis(c *redis.Client) {
	if err := c.Close(); err != nil {
		log.Printf("[App] 关闭 Redis 连接失败: %v", err)
	}
}

// ScrollSpyOptions 从配置读取目录导航参数
func (a *App) ScrollSpyOptions() scrollspy.Options {
	return scrollSpyOptions(a.cfg)
}

func scrollSpyOptions(cfg *config.Config) scrollspy.Options {
	return scrollspy.Options{
		Debounce:      time.Duration(cfg.GetInt(config.KeyScrollDebounceMS)) * time.Millisecond,
		Lookahead:     cfg.GetFloat64(config.KeyScrollLookahead),
		NavUpperRatio: cfg.GetFloat64(config.KeyScrollNavUpperRatio),
		HeaderMargin:  cfg.GetFloat64(config.KeyScrollHeaderMargin),
		NarrowWidth:   cfg.GetFloat64(config.KeyScrollNarrowWidth),
	}
}
