package storage

const sampleCSV = `Project ID,Project Name,Dev Tool ID,Dev Tool Name,Relationship Type,Num Project Devs Engaging with Dev Tool,Num Smart Contract Devs Engaging with Dev Tool,Project Total Txns,Project Total Gas Fees
p1,Velodrome,t1,viem,Dependency,4,2,120000,35.5
p1,Velodrome,t2,ethers.js,Both,6,2,120000,35.5
p2,Aerodrome,t1,viem,Engagement,2,0,90000,12.25
`
