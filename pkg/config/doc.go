/*
Package config loads and validates the run configuration.

Configuration is read once at process start from an optional YAML file, with
environment variables layered on top. The environment always wins; that is
how CI schedulers inject the account list and push credentials without
writing them to disk.

Recognized environment variables:

	SIGNTIDE_ACCOUNTS                flat alternating username/password list
	SIGNTIDE_FAMILY_IDS              ordered family-ID list (one per cohort)
	SIGNTIDE_GATEWAY                 check-in gateway base URL
	SIGNTIDE_COHORT_SIZE             accounts per cohort (default 20)
	SIGNTIDE_PERSONAL_CONCURRENCY    personal sign-in fan-out width
	SIGNTIDE_FAMILY_CONCURRENCY      family sign-in fan-out width
	SIGNTIDE_PERSONAL_FIRST_ONLY     restrict personal sign-in to cohort firsts
	SIGNTIDE_FAMILY_SINGLE_FIRST     single sequential family sign-in for firsts
	SIGNTIDE_FATAL_AUTH_TIMEOUT      abort the run on a login timeout (default true)
	SIGNTIDE_METRICS_ADDR            Prometheus listen address
	SIGNTIDE_LOG_LEVEL               debug/info/warn/error
	WX_PUSHER_APP_TOKEN              WxPusher credential pair
	WX_PUSHER_UID
	TELEGRAM_BOT_TOKEN               Telegram credential pair
	TELEGRAM_CHAT_ID

A notification channel is enabled iff both members of its credential pair
are present. Retry policies can be tuned with business_attempts /
business_delay and notify_attempts / notify_delay in the YAML file; zero
values keep the canonical defaults from pkg/retry.
*/
package config
