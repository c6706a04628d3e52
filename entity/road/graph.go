package road

import (
	"gonum.org/v1/gonum/graph/simple"
)

// Graph 路网的有向图视图
// 功能：每条道路一个节点（节点ID即道路编号），每条后继关系一条边
// 返回：新建的gonum有向图，调用方可自由修改
// 说明：用于构造时的无环检查以及外部的路网分析
func (net *Network) Graph() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := range net.roads {
		g.AddNode(simple.Node(i))
	}
	for i := range net.roads {
		if j := net.next[i]; j != NoRoad {
			g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
		}
	}
	return g
}
