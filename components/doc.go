// Package components 是本库支持的基本组件。
//
// 该包提供了组件系统的基础类型和接口。包括：
//   - Typer：组件类型标识接口，用于获取组件实现类型名称
//   - Component：组件类型常量枚举，定义了所有支持的组件类型
package components
