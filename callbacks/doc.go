/*
Package callbacks - 横切关注点处理机制

本包提供统一的回调处理能力，专门解决组件执行过程中的横切关注点问题，
如日志记录、性能监控、错误跟踪和指标收集等非功能性需求。
提示词模板在格式化前后触发 OnStart/OnEnd 回调，格式化失败时触发 OnError 回调。
*/
package callbacks
